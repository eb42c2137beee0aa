// Package deps verifies that the external command line tools HomeTunes
// shells out to are present on the host.
package deps
