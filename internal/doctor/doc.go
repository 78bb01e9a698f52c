// Package doctor provides read-only diagnostic checks for nvsetup.
//
// Checks implement [Check] and are aggregated by a [Runner] into a
// [Report]. A check never installs, moves or clones anything; it only
// reports what the installer would find.
package doctor
