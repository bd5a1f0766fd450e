// Package compileinfoprint is imported for the side effect of printing the
// build information of the binary to os.Stderr at startup.
package compileinfoprint

import "github.com/carbocation/prscalc/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
