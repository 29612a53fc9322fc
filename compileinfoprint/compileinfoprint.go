// compileinfoprint is imported for the side effect of printing the compileinfo
// of the running binary to os.Stderr
package compileinfoprint

import "github.com/carbocation/nanoqc/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
