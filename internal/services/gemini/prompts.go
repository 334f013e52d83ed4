package gemini

import "fmt"

// NoTranscriptSummaryNotice substitutes for a missing transcript summary in
// both generation prompts so the model always sees the two input sections.
const NoTranscriptSummaryNotice = "No transcript summary available."

const compressionPromptTemplate = `
Extract maximum value through rigorous intellectual processing before communicating. Identify essential concepts by first thinking deeply about what would save the recipient cognitive effort.

Process:

- Analyze for conceptual redundancies and merge related ideas
- Structure content in problem-to-solution narrative arc
- Eliminate clichés and repetitive phrasing
- Discard information that doesn't contribute meaningful depth

Deliver either:

1. One concentrated paragraph capturing essential meaning, or
2. Minimal bullet points preserving only vital information

Include a 3-10 word headline using primarily nouns that encapsulates the core concept.

Remember: The value lies not in what you include, but in what you've thoughtfully eliminated through deep analysis.


Here is the input text / information:

=== 
Summary of the topic or assumptions made by the speaker:

%s

=== Summary of community people comments on the topic:

%s
`

const evaluationPromptTemplate = `
# CT : Assess standards 

Given text below, please assess the contents against the critical thinking standards defined below. based on the standard in depth guidelines, use the questions in order to view the given text in perspective of standards and given goal. 

My goal is to help people resolve their problems being able to empathise understand and move quickly. 

Finally, for the output format, 
- for each standard please provide a follow up questions. As "Those" questions is crucial needed to address a further standard alignment, in order to capture the higher standard of information, or inference assumed in the text. 


Here are the standards in depth : 

## Standards in depth : Clarity

Clarity is fundamental; without it, the accuracy or relevance of a statement can't be assessed. Questions like "Could you elaborate?" or "Could you give an example?" help clarify statements, making them understandable and actionable. For instance, transforming a vague question about the American education system into a specific inquiry about educators' roles in skill development clarifies the issue and facilitates effective discussion and solutions.

When engaging in discussions, it's crucial to clarify vague statements to understand their true implications. For instance, the claim "welfare is corrupt" can imply various issues ranging from moral concerns about the distribution of goods to legal loopholes and ethical problems with recipients. Such statements require examination to determine their clarity and accuracy. 

- Could you elaborate? 
- Could you illustrate what you mean? 
- Could you give me an example?

## Standards in depth : Accuracy

Critical thinking involves a systematic approach to evaluating the accuracy and clarity of statements and beliefs. It requires questioning the truthfulness and precision of what is heard or read, especially when skepticism is warranted. Often, statements are presented in a way that does not align with reality, either due to intentional misrepresentation, such as in advertising, or biased perspectives that favor one's own beliefs while dismissing others'. For instance, an advertisement claiming "100%% pure water" that contains trace chemicals is inaccurate. Similarly, personal biases can lead us to accept statements that align with our beliefs without scrutiny and reject opposing views. Good critical thinkers challenge their own views and others', striving for a clear and accurate understanding of issues, regardless of personal biases or external influences. This skill is crucial in differentiating between what is clear and what might be misleading or vague, thereby enhancing one's ability to address and reformulate problems more effectively.

- How could we check on that? 
- How could we find out if that is true? 
- How could we verify or test that?

## Standards in depth : Precision

Precision in communication is crucial for clarity and effective understanding, especially in situations where specifics are essential to make informed decisions or solve problems. 
For instance, a vague statement like "Jack is overweight" lacks the necessary detail to understand the severity of the situation—it could mean an excess of 1 pound or 500 pounds. 
In everyday interactions, such as confirming the presence of milk in the refrigerator, a simple "Yes" might suffice. However, in more complex scenarios like financial advice or medical instructions, precise information is vital. 

Asking probing questions to understand the specifics can lead to better outcomes and prevent misunderstandings. For example, unclear directions to a location can result in getting lost, highlighting the negative consequences of imprecise communication. Thus, recognizing when and where precision is needed can significantly enhance the effectiveness of our interactions.

- Could you be more specific? 
- Could you give me more details? 
- Could you be more exact?

## Standards in depth : Depth

When tackling complex issues, it's essential to delve beyond superficial solutions to understand and address the underlying complexities. Simply responding to intricate problems with clear, accurate, and relevant answers, like the "Just say no" campaign for drug use in America, often lacks depth and fails to consider broader factors such as historical context, political landscape, economic implications, and psychological aspects of human behavior. Such surface-level solutions may appear satisfactory but typically fall short in effectively resolving the core of the problem, leading to inadequate outcomes or unintended consequences. 

To genuinely address and resolve complex issues, a multidimensional approach that encompasses all underlying factors and their interconnections is crucial. This method ensures a more sustainable and comprehensive solution, avoiding the pitfalls of decisions based solely on oversimplified responses.

- What factors make this a difficult problem? 
- What are some of the complexities of this question? 
- What are some of the difficulties we need to deal with?

## Standards in depth : Breadth

To achieve a broad understanding of issues, it is crucial to consider all relevant viewpoints, especially those that oppose our own. Often, personal biases, limited education, and socio-centrism lead to narrow-minded thinking, where alternative perspectives are ignored or undervalued. 
For instance, in a domestic scenario where one spouse prefers to fall asleep with the TV on while the other struggles with it, recognizing and intellectually empathizing with the spouse's opposing view can lead to a broader understanding and a more equitable solution. Similarly, in heated debates like the morality of abortion, articulating each stance in detail—as seen by its proponents—without personal bias ensures a comprehensive grasp of the topic. 
This approach not only promotes intellectual fairness but also challenges self-serving behaviors by forcing consideration of differing viewpoints, thus fostering more balanced and informed decisions.

- How does that relate to the problem? 
- How does that bear on the question? 
- How does that help us with the issue?

## Standards in depth : Logicalness, Logical Consistency

Logical thinking necessitates the alignment and mutual support of combined thoughts. Often, humans unknowingly maintain contradictory beliefs, leading to inconsistencies in reasoning. For instance, despite evidence showing students' deficiencies in basic academic skills, teachers may illogically conclude that their teaching methods don't require modification. Similarly, a person advised by doctors to monitor their diet post-heart attack might illogically dismiss the importance of their eating habits. These examples highlight the common disconnect between evidence and conclusions drawn, underscoring the importance of critically evaluating our thought processes to ensure they are logical and consistent. Identifying and addressing illogical thinking in scenarios like educational settings or personal health decisions can prevent counterproductive outcomes and foster more rational decision-making.

- Does all of this make sense together? 
- Does your first paragraph fit in with your last?
- Does what you say follow from the evidence?

## Standards in depth : Significance

In both personal and professional contexts, there's a common tendency to concentrate on immediate, less important matters rather than on significant, impactful issues. This often leads to a misallocation of attention and resources, focusing on trivialities at the expense of truly meaningful objectives. For instance, students might prioritize grades over genuine learning, and individuals might dwell on superficial life details instead of profound life goals. To address this, it's crucial to identify and prioritize questions and actions that hold the most significance. Questions like "What does it mean to be an educated person?" or "What is the most important thing I could do in my life?" help steer focus towards substantial, impactful endeavors. Reflecting on how much time is spent on significant versus trivial pursuits can be a practical step towards redirecting efforts towards what truly matters, fostering a more purposeful and fulfilling approach to both personal growth and professional development.

- Is this the most important problem to consider? 
- Is this the central idea to focus on? 
- Which of these facts are the most important?

## Standards in depth : Fairness, Fair Thinking

Fair thinking involves rigorously evaluating our assumptions and decisions against the evidence available, ensuring that they are justified and unbiased. This process requires acknowledging the perspectives and rights of others, rather than allowing self-interest to skew our judgment. In practical scenarios, like the office temperature dispute between Kristi and Abbey, fair thinking mandates considering all relevant facts and viewpoints before drawing conclusions. Stereotypes and prejudices, such as broad generalizations about social groups, often lead to unjustified assumptions, which in turn result in erroneous and unfair conclusions. To cultivate fairness, one must actively challenge personal biases and self-serving tendencies by critically assessing the fairness of their thoughts and actions regularly. This introspection helps in identifying and correcting distortions in our thinking, thereby aligning our reasoning more closely with fairness and objectivity.

- Is my thinking justifiable in context? 
- Are my assumptions supported by evidence? 
- Is my purpose fair given the situation? 
- Am I using my concepts in keeping with educated usage or am I distorting them to get what I want?


Here is the input text / information : 

=== 
Summary of the topic or assumptions made by the speaker : 

%s

=== Summary of community people comments on the topic : 

%s
`

// CompressionPrompt renders the synthesis instruction around the two stage
// summaries. An empty transcript summary is replaced with a fixed notice; an
// empty comments summary passes through as-is.
func CompressionPrompt(transcriptSummary, commentsSummary string) string {
	if transcriptSummary == "" {
		transcriptSummary = NoTranscriptSummaryNotice
	}
	return fmt.Sprintf(compressionPromptTemplate, transcriptSummary, commentsSummary)
}

// EvaluationPrompt renders the critical thinking standards instruction
// around the two stage summaries, using the same missing-transcript notice
// as CompressionPrompt.
func EvaluationPrompt(transcriptSummary, commentsSummary string) string {
	if transcriptSummary == "" {
		transcriptSummary = NoTranscriptSummaryNotice
	}
	return fmt.Sprintf(evaluationPromptTemplate, transcriptSummary, commentsSummary)
}
