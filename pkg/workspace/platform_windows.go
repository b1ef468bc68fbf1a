//go:build windows

package workspace

// Executables looked up below <home>/bin.
const (
	JavaExecutable = "java.exe"
	LauncherScript = "catalina.bat"
)
