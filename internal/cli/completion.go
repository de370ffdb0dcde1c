package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long      string   // long flag name without "--" (e.g., "help")
	Short     string   // short flag without "-" (e.g., "q")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "number", "duration")
	IsFile    bool     // true if the flag takes a file path
	IsDir     bool     // true if the flag takes a directory
	IsKind    bool     // true if values come from the fingerprint kind list (dynamic)
	Section   string   // fish comment section
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message", Section: "Help and version"},
	{Long: "version", Help: "Show version information", Section: "Help and version"},
	{Long: "cache", Help: "Hash cache file", IsFile: true, ValueName: "file", Section: "Files"},
	{Long: "assets", Help: "Directory for images and data", IsDir: true, ValueName: "directory", Section: "Files"},
	{Long: "report", Help: "Markdown report path", IsFile: true, ValueName: "file", Section: "Files"},
	{Long: "config", Help: "YAML configuration file", IsFile: true, ValueName: "file", Section: "Files"},
	{Long: "metrics-file", Help: "Prometheus textfile output", IsFile: true, ValueName: "file", Section: "Files"},
	{Long: "kinds", Help: "Fingerprint kinds to update", IsKind: true, ValueName: "kinds", Section: "Fingerprints"},
	{Long: "probe", Help: "Ashlock base probe strategy", ValueName: "strategy", Section: "Fingerprints"},
	{Long: "step", Help: "Ashlock grid spacing", Values: []string{"0.01", "0.025", "0.05", "0.1"}, ValueName: "step", Section: "Fingerprints"},
	{Long: "opponents", Help: "Random opponents of the transitive fingerprint", Values: []string{"10", "30", "50"}, ValueName: "number", Section: "Fingerprints"},
	{Long: "ashlock-turns", Help: "Turns per Ashlock match", ValueName: "number", Section: "Fingerprints"},
	{Long: "ashlock-repetitions", Help: "Ashlock repetitions", ValueName: "number", Section: "Fingerprints"},
	{Long: "transitive-turns", Help: "Turns per transitive match", ValueName: "number", Section: "Fingerprints"},
	{Long: "transitive-repetitions", Help: "Transitive repetitions", ValueName: "number", Section: "Fingerprints"},
	{Long: "v-short-turns", Help: "Turns per short run time transitive match", ValueName: "number", Section: "Fingerprints"},
	{Long: "v-short-repetitions", Help: "Short run time transitive repetitions", ValueName: "number", Section: "Fingerprints"},
	{Long: "seed", Help: "Seed of the match random sources", ValueName: "number", Section: "Execution"},
	{Long: "workers", Help: "Concurrent matches per fingerprint", ValueName: "number", Section: "Execution"},
	{Long: "timeout", Help: "Maximum run time", Values: []string{"10m", "30m", "1h", "6h"}, ValueName: "duration", Section: "Execution"},
	{Long: "force", Help: "Recompute every fingerprint", Section: "Execution"},
	{Long: "list", Help: "List stale fingerprints and exit", Section: "Execution"},
	{Long: "compact", Help: "Rewrite the cache with one row per entry", Section: "Execution"},
	{Long: "preview", Help: "Render the report in the terminal", Section: "Output"},
	{Long: "verbose", Short: "v", Help: "Display memory and system statistics", Section: "Output"},
	{Long: "quiet", Short: "q", Help: "Suppress progress and summary output", Section: "Output"},
	{Long: "no-color", Help: "Disable colored output", Section: "Output"},
	{Long: "theme", Help: "Color theme", Values: []string{"auto", "dark", "light"}, ValueName: "theme", Section: "Output"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error", "disabled"}, ValueName: "level", Section: "Output"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell", Section: "Completion"},
}

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish", "powershell").
//   - kinds: List of fingerprint kind names.
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string, kinds []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, kinds)
	case "zsh":
		return generateZshCompletion(out, kinds)
	case "fish":
		return generateFishCompletion(out, kinds)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, kinds)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer, kinds []string) error {
	var opts []string
	for _, f := range flagRegistry {
		opts = append(opts, "--"+f.Long)
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
		}
	}

	type caseEntry struct {
		patterns []string
		body     string
	}
	var cases []caseEntry
	var filePatterns, dirPatterns []string
	for _, f := range flagRegistry {
		switch {
		case f.IsKind:
			cases = append(cases, caseEntry{
				patterns: []string{"--" + f.Long, "-" + f.Long},
				body:     `COMPREPLY=( $(compgen -W "${kinds}" -- "${cur}") )`,
			})
		case f.IsFile:
			filePatterns = append(filePatterns, "--"+f.Long, "-"+f.Long)
		case f.IsDir:
			dirPatterns = append(dirPatterns, "--"+f.Long, "-"+f.Long)
		case len(f.Values) > 0:
			cases = append(cases, caseEntry{
				patterns: []string{"--" + f.Long, "-" + f.Long},
				body:     fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " ")),
			})
		}
	}
	if len(filePatterns) > 0 {
		cases = append(cases, caseEntry{patterns: filePatterns, body: `COMPREPLY=( $(compgen -f -- "${cur}") )`})
	}
	if len(dirPatterns) > 0 {
		cases = append(cases, caseEntry{patterns: dirPatterns, body: `COMPREPLY=( $(compgen -d -- "${cur}") )`})
	}

	var caseBody strings.Builder
	for _, c := range cases {
		caseBody.WriteString("        ")
		caseBody.WriteString(strings.Join(c.patterns, "|"))
		caseBody.WriteString(")\n")
		caseBody.WriteString("            ")
		caseBody.WriteString(c.body)
		caseBody.WriteString("\n            return 0\n            ;;\n")
	}

	script := fmt.Sprintf(`# Bash completion script for fingerprints
# Add this to your ~/.bashrc or ~/.bash_completion

_fingerprints_completions() {
    local cur prev opts kinds
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"
    kinds="%s all"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _fingerprints_completions fingerprints
`, strings.Join(opts, " "), strings.Join(kinds, " "), caseBody.String())

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer, kinds []string) error {
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	script := fmt.Sprintf(`#compdef fingerprints

# Zsh completion script for fingerprints
# Add this to your ~/.zshrc or place in $fpath

_fingerprints() {
    local -a kinds
    kinds=(%s all)

    _arguments -s \
%s
}

_fingerprints "$@"
`, strings.Join(kinds, " "), strings.Join(args, " \\\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsDir:
		valueSuffix = fmt.Sprintf(":%s:_files -/", f.ValueName)
	case f.IsKind:
		valueSuffix = fmt.Sprintf(":%s:($kinds)", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer, kinds []string) error {
	lines := []string{
		"# Fish completion script for fingerprints",
		"# Add this to ~/.config/fish/completions/fingerprints.fish",
		"",
		"# Disable file completion by default",
		"complete -c fingerprints -f",
	}

	kindList := strings.Join(kinds, " ")
	section := ""
	for _, f := range flagRegistry {
		if f.Section != section {
			section = f.Section
			lines = append(lines, "", "# "+section)
		}
		lines = append(lines, fishCompleteLine(f, kindList))
	}
	lines = append(lines, "")

	if _, err := fmt.Fprint(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(f FlagCompletion, kindList string) string {
	parts := []string{"complete -c fingerprints"}
	if f.Short != "" {
		parts = append(parts, fmt.Sprintf("-s %s", f.Short))
	}
	parts = append(parts, fmt.Sprintf("-l %s", f.Long))
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile, f.IsDir:
		parts = append(parts, "-rF")
	case f.IsKind:
		parts = append(parts, fmt.Sprintf("-xa '%s all'", kindList))
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}

// generatePowerShellCompletion generates a PowerShell completion script.
func generatePowerShellCompletion(out io.Writer, kinds []string) error {
	var optionEntries []string
	for _, f := range flagRegistry {
		if f.Short != "" {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '-%s'; Description = '%s' }", f.Short, f.Help))
		}
		optionEntries = append(optionEntries, fmt.Sprintf(
			"        @{Name = '--%s'; Description = '%s' }", f.Long, f.Help))
	}

	psSwitchEntry := func(flagName, values string) string {
		return fmt.Sprintf(`        '--%s' {
            @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, flagName, values)
	}

	var switchEntries []string
	for _, f := range flagRegistry {
		switch {
		case f.IsKind:
			switchEntries = append(switchEntries, psSwitchEntry(f.Long, "$fingerprintKinds"))
		case !f.IsFile && !f.IsDir && len(f.Values) > 0:
			switchEntries = append(switchEntries, psSwitchEntry(f.Long, psQuote(f.Values)))
		}
	}

	script := fmt.Sprintf(`# PowerShell completion script for fingerprints
# Add this to your $PROFILE

$fingerprintKinds = @(%s, 'all')

Register-ArgumentCompleter -CommandName 'fingerprints' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
%s
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, psQuote(kinds), strings.Join(optionEntries, "\n"), strings.Join(switchEntries, "\n"))

	_, err := fmt.Fprint(out, script)
	return err
}

func psQuote(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}
