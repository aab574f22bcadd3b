// Package preview runs a kantera script live.
//
// An Engine loads main.ks from a project directory, renders the current
// frame and its slice of audio at the script's frame rate, and hands the
// encoded results to subscribers. Editing the script reloads it; a script
// that fails to evaluate leaves the previous scene playing and reports the
// error as a log message.
//
// Handler serves the stream over a WebSocket: each tick sends
//
//	{"type":"frame"}  followed by a binary PNG
//	{"type":"audio"}  followed by binary little-endian u16 PCM
//	{"type":"sync","frame":N}
//
// and script errors arrive as {"type":"log","log":"..."}.
package preview
