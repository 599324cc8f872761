// Package handlers implements the HTTP API layer of infra-validator.
//
// Handlers validate requests, delegate to the services layer and convert
// models to the API types of api/v1. They hold no state of their own.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Request binding and validation                               │
//	│  - Error mapping to HTTP status codes                           │
//	│  - Model-to-API conversion                                      │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Services Layer                             │
//	│  Suite │ Report │ Inventory                                     │
//	└─────────────────────────────────────────────────────────────────┘
//
// # API Endpoints
//
//	┌────────┬────────────────────────┬──────────────────────────────────────────┐
//	│ Method │ Endpoint               │ Description                              │
//	├────────┼────────────────────────┼──────────────────────────────────────────┤
//	│ GET    │ /health                │ Liveness and version                     │
//	│ POST   │ /validations/{check}   │ Run one validator on posted records      │
//	│ GET    │ /inventory/{hostname}  │ Look a host up in the workbook           │
//	│ PUT    │ /inventory/{hostname}  │ Create or update a host in the workbook  │
//	│ POST   │ /runs                  │ Run the configured suite                 │
//	│ GET    │ /runs                  │ List runs with filtering and pagination  │
//	│ GET    │ /runs/{id}             │ Get one run with its check results       │
//	└────────┴────────────────────────┴──────────────────────────────────────────┘
//
// POST /validations/{check} takes the records of the check plus optional
// thresholds, cluster, required VMs, criticality and reference time:
//
//	{
//	    "records": [{"vm_name": "db-01", "daily_retention": 5}],
//	    "thresholds": {"retention": {"minDaily": 7}}
//	}
//
// GET /runs accepts state, check and suite filters, either repeated or comma
// separated, plus page and pageSize (default 20, max 100):
//
//	/runs?state=completed,error&check=capacity&page=2&pageSize=10
//
// # Error Handling
//
// Every error response is { "error": "message" }.
//
//	┌─────────────────────────────┬────────┐
//	│ Error Type                  │ Status │
//	├─────────────────────────────┼────────┤
//	│ Invalid body or query       │ 400    │
//	│ ConfigurationError          │ 400    │
//	│ UnauthorizedError           │ 401    │
//	│ ResourceNotFoundError       │ 404    │
//	│ Unknown check               │ 404    │
//	│ ConnectionError             │ 502    │
//	│ No store or workbook        │ 503    │
//	│ Anything else               │ 500    │
//	└─────────────────────────────┴────────┘
//
// A suite run that fails as a whole is not an HTTP error: POST /runs returns
// 201 with the run in state error.
package handlers
