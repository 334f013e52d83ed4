// Package transcript fetches video captions without Data API quota.
//
// The watch page embeds a player response listing caption tracks; the client
// picks the best track by configured language preference (manual tracks over
// auto-generated), fetches it in the player's json3 format, and joins the
// segments into plain text. Transcript retrieval is best-effort by contract:
// Fetch reports failure inside the returned TranscriptData instead of an
// error so analyses proceed without a transcript.
package transcript
