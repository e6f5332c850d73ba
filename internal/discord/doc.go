// Package discord provides Discord Bot API integration for posting event
// messages to a channel.
//
// The package sends formatted messages via simple HTTP requests against the
// channel messages endpoint; no SDK or gateway connection is used, since
// the service only posts outbound messages. Authentication requires a bot
// token and the target channel ID.
package discord
