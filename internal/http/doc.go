// Package http provides the HTTP transport for the parish hall booking API.
//
// The router exposes the following endpoints:
//   - POST /sessions: authenticates a user. Body: {"email","password"}. Response:
//     {"token","expiresAt","user"} with the token also surfaced via the
//     `X-Session-Token` header. DELETE /sessions/current revokes the token.
//   - POST /users: self-service registration, open to unauthenticated callers.
//     GET /users lists accounts (administrators only). PUT /users/{id} updates
//     the profile, PUT /users/{id}/password rotates credentials,
//     PUT /users/{id}/role and DELETE /users/{id} are administrator operations.
//   - GET /halls, POST /halls, PUT /halls/{id}, DELETE /halls/{id}: hall catalog
//     endpoints. Listing is available to any authenticated caller while
//     mutations require the administrator role.
//   - GET /bookings, POST /bookings, PUT /bookings/{id}/status,
//     DELETE /bookings/{id}: booking lifecycle endpoints. POST /admin/bookings
//     lets an administrator book on behalf of another user with immediate
//     approval.
//   - GET /notifications, PUT /notifications/{id}/read: per-user notification
//     feed. Administrators also see the shared administrator broadcasts.
//   - GET /settings, PUT /settings: application settings, mutation restricted
//     to administrators.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
