// Package api provides the HTTP REST API for DX-Ascend Core.
//
// It serves three surfaces under /api:
//   - the read-only runtime surface display clients poll for screen
//     documents (/api/runtime/...)
//   - the system object tree used by the project editor (/api/system-objects)
//   - project CRUD for screens, widgets, bindings and field-bus definitions
//
// The server follows the same lifecycle pattern as other infrastructure components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api
