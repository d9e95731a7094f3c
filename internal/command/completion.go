package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/nthprime/internal/meta"
)

const bashCompletionScript = `# bash completion for nthprime
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_nthprime()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "nth bench check reports completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--attrs -a --color -c --filter -f --output -o --sort -s --titles -t"

    case "$cmd" in
        nth)
            local opts="$common --method -m"
            ;;
        bench)
            local opts="$common --against --baseline --legacy --methods --n --save --skip-large"
            ;;
        reports)
            local opts="$common --purge"
            ;;
        check)
            local opts="--upto"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
            return 0
            ;;
        --method|-m)
            COMPREPLY=( $(compgen -W "auto naive caching opt" -- "$cur") )
            return 0
            ;;
        --baseline)
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
            ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _nthprime nthprime
`

const zshCompletionScript = `#compdef nthprime

_nthprime() {
  local -a cmds
  cmds=(
    'nth:print the n-th prime'
    'bench:benchmark the prime finders'
    'check:cross-check the prime finders'
    'reports:list saved benchmark reports'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'nthprime commands' cmds
    return
  fi

  case $words[2] in
    nth)
      _arguments -C \
        $common \
        '(-m --method)'{-m,--method}'[finder]:method:(auto naive caching opt)' \
        '*:n'
      ;;
    bench)
      _arguments -C \
        $common \
        '--against[compare with a report saved by --save]:name' \
        '--baseline[compare with a saved json report]:file:_files' \
        '--legacy[print plain progress lines]' \
        '--methods[methods for a custom phase]:methods' \
        '--n[n for a custom phase]:n' \
        '--save[save results as a named report]:name' \
        '--skip-large[skip the 1,000,000th prime]'
      ;;
    check)
      _arguments -C '--upto[largest n to check]:n'
      ;;
    reports)
      _arguments -C $common '--purge[remove reports older than hours]:hours'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _nthprime nthprime
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := cmd.Root().Writer
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	case "":
		// Try to detect from SHELL or print usage
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(w, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(w, bashCompletionScript)
		} else {
			fmt.Fprintln(cmd.Root().ErrWriter, "usage: nthprime completion [bash|zsh]")
		}
	default:
		return fmt.Errorf("unsupported shell: %s", shell)
	}
	return nil
}

func CompletionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "nthprime completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
