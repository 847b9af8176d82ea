package secrets

// User-facing status messages.
const (
	msgAlreadyRegistered  = "User already registered. Please log in."
	msgRegistrationFailed = "Registration Failed! Please try again"
	msgNotRegistered      = "User Not Registered! Please Register First"
	msgWrongPassword      = "Login Failed! Password is wrong"
	msgInvalidLogin       = "Invalid username or password"
	msgNoSecrets          = "No Secrets Yet! Submit A Secret"
	msgEmptySecret        = "Please write a secret before submitting"
	msgProviderFailed     = "Google sign-in failed. Please try again"
	msgTryAgain           = "Something went wrong. Please try again"
)
