// Package backup opens a vCenter REST session and collects backup records.
//
// Session lifecycle:
//
//	NewClient ──► Connect ──► collectors ──► Disconnect
//	              POST /rest/com/vmware/cis/session (basic auth)
//	                                       DELETE /rest/com/vmware/cis/session
//	                                       (vmware-api-session-id header)
//
// Collectors need a session and delegate to a Provider. No backup product
// is integrated yet, so the default Provider is a StubProvider whose records
// always satisfy the default thresholds.
package backup
