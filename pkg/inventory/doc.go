// Package inventory looks up per-host configuration in spreadsheet
// inventories.
//
// A Layout names the sheet, the hostname column and the header of every
// field. Two layouts are built in:
//
//	┌────────┬──────────────────────────────────────────┬──────────┬──────────────────────┐
//	│ Layout │ Hostname column                          │ Match    │ IP column            │
//	├────────┼──────────────────────────────────────────┼──────────┼──────────────────────┤
//	│ eds    │ Server Name                              │ exact    │ IP Assignment        │
//	│ cbs    │ Use PSC Server Naming Convention to ...  │ contains │ IP Assignments       │
//	└────────┴──────────────────────────────────────────┴──────────┴──────────────────────┘
//
// Every Book is opened in one Mode, and that mode decides every failure:
//
//	┌────────────────────────┬──────────────────────────┬───────────────────────────────┐
//	│ Condition              │ Strict                   │ Lenient                       │
//	├────────────────────────┼──────────────────────────┼───────────────────────────────┤
//	│ workbook/sheet missing │ error at Open            │ warning, lookups use defaults │
//	│ required column absent │ ConfigurationError       │ warning, defaults             │
//	│ hostname not found     │ ResourceNotFoundError    │ default record                │
//	│ no IPv4 in IP cell     │ ConfigurationError       │ layout default IP             │
//	│ other empty cell       │ N/A                      │ layout default, else N/A      │
//	└────────────────────────┴──────────────────────────┴───────────────────────────────┘
//
// UpsertHost and Generate write workbooks in the same layouts.
package inventory
