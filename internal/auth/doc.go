// Package auth obtains the delegated OAuth2 credential used to read the
// calendar and send mail.
//
// A token persisted by a previous run is reused while it is valid. An expired
// token with a refresh token is renewed silently; in every other case the user
// goes through the browser consent screen. Whatever token comes out of that
// process is written back to the token store before it is handed out.
package auth
