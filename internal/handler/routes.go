package handler

// APIV1Prefix mirrors every resource route under a versioned path; the
// unversioned /users paths stay available for existing clients.
const APIV1Prefix = "/api/v1"

const (
	livePath  = "/live"
	readyPath = "/ready"
	usersPath = "/users"
)
