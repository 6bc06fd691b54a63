package commands

// Message constants
const (
	MsgRootShort = "Resolve coordinate operations between reference systems"
	MsgRootLong  = `crsops resolves coordinate operations between pairs of reference
systems from a user-maintained definitions file, deriving the inverse
operation when only the opposite direction is defined.

The definitions file is searched for in the directory named by
CRSOPS_EXTRA_DIRECTORY, then in the well-known configuration
directories.`

	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"

	MsgCompletionShort = "Generate shell completion script"
	MsgCompletionLong  = `To load completions:

Bash:
  $ source <(crsops completion bash)

Zsh:
  $ crsops completion zsh > "${fpath[1]}/_crsops"

Fish:
  $ crsops completion fish | source

PowerShell:
  PS> crsops completion powershell | Out-String | Invoke-Expression
`

	MsgVersionShort = "Print version information"
)
