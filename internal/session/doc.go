// Package session owns the connection to a chat server.
//
// # Overview
//
// A Session wraps one Transport (newline-framed TCP or WebSocket text
// frames), performs the login or registration handshake, and then turns
// the connection into a channel of inbound lines plus a Send method. It
// never interprets chat content beyond the handshake reply; routing lines
// into conversations is the router's job.
//
// # Lifecycle
//
// 1. Connect dials the server and sends "/login <user> <hash>" (or
// "/register ..."). The first reply decides the outcome:
//   - "Server> /e <reason>" means the server refused; Connect returns an
//     auth error carrying the reason and closes the connection.
//   - anything else means we are in; that reply becomes the first line
//     delivered on Lines.
//
// 2. A reader goroutine pushes every further line onto Lines, in the
// order received. Lines is closed when the connection ends, after which
// Err reports why.
//
// 3. Close sends "/exit" on a best-effort basis and tears down the
// transport.
//
// # Transports
//
// "tcp" dials host:port and frames lines with '\n'. "ws" dials
// ws://host:port/ws (or the URL given verbatim) and sends one line per
// text frame; inbound frames holding several lines are split.
package session
