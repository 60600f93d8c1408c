package gateway

// AuthError reports a rejected login or registration. Message is the
// server-supplied reason, verbatim.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// TransferError reports a transfer the server refused (insufficient
// funds, unknown recipient, invalid amount). Message is the server's
// classification, verbatim.
type TransferError struct {
	Message string
}

func (e *TransferError) Error() string {
	return e.Message
}

// FetchError wraps a failed transactions or balance read.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return "fetch failed: " + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NetworkError wraps a transport or decoding failure. No usable server
// response reached the client, so there is no server message to show.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network failure: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
