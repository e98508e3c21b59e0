// Package sharedmimeinfo loads the globs and aliases files of the [Shared MIME-info
// specification] into a registry.
// For example, the line application/x-pdf application/pdf of the aliases file makes
// application/x-pdf an alias of application/pdf, and the line application/pdf:*.pdf of the
// globs file maps application/pdf to the pdf extension.
//
// Only readers are accepted, finding the files is up to the caller.
//
// [Shared MIME-info specification]: https://specifications.freedesktop.org/shared-mime-info-spec/0.22/
package sharedmimeinfo
