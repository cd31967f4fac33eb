// Package auth turns credentials into a session and answers role questions
// about the current session.
//
// Guard checks are pure reads of the session store and must run before any
// privileged work. Authentication failures never reveal whether the username
// exists.
package auth
