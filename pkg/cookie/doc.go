// Package cookie manages HTTP cookies with AES-GCM encryption and one-shot
// flash values.
//
// A Manager is created with one or more secrets of at least 32 characters.
// The first secret encrypts; every secret is tried on decrypt, which allows
// key rotation without logging everybody out:
//
//	mgr, err := cookie.New([]string{newSecret, oldSecret}, cookie.WithSecure(true))
//
//	_ = mgr.SetEncrypted(w, "sid", token, cookie.WithMaxAge(3600))
//	token, err := mgr.GetEncrypted(r, "sid")
//
// Flash values are encrypted, JSON-encoded, and deleted on first read.
package cookie
