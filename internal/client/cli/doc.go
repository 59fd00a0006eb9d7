// Package cli provides the interactive fittrack command-line client.
//
// It wires configuration, the local database, the remote store client and
// the application services into a read–eval–print loop. Typical flow:
// restore the stored session, then execute user commands until exit.
//
// Key features:
//   - Register / Login / Logout and password recovery (forgot, openlink, reset)
//   - Dashboard with totals and the weight trend
//   - Log workouts and body measurements
//   - View and edit the profile, upload an avatar
//   - Administrator overview (admins only)
//   - Theme preference
//
// Every command is checked against the view guard before it runs, so
// protected commands redirect to sign-in and the admin overview is only
// reachable once the role check has granted it.
package cli
