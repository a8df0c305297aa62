package domain

// ExecCommand represents an external command to be executed.
// This type is used to pass command information between layers
// without exposing implementation details.
type ExecCommand struct {
	Program string
	Dir     string
	Args    []string
}

// NewCommand creates a command that runs program with args.
func NewCommand(program string, args []string, dir string) *ExecCommand {
	return &ExecCommand{Program: program, Args: args, Dir: dir}
}

// NewShellCommand creates a command that runs script with sh -c.
// Extra args become the positional parameters $1, $2, ...
func NewShellCommand(script, dir string, args ...string) *ExecCommand {
	return &ExecCommand{
		Program: "sh",
		Args:    append([]string{"-c", script, "sh"}, args...),
		Dir:     dir,
	}
}
