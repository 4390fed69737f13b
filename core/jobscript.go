package core

import (
	"bufio"
	"errors"
	"io"
	"io/ioutil"
	"strings"

	flag "github.com/juju/gnuflag"

	logger "pcf.io/pcf-hpc/logger"
)

// Script is an existing batch script split into its parts.
type Script struct {
	Shell   string
	Options Options
	// Body lines following the directive block
	Commands []string
	// Directive lines that could not be parsed
	Unsupported []string
}

// Directives use Short and Long command line options
// Save both with gnuflag
type gnuFlag struct {
	Short string
	Long  string
	Value *string
}

// map key is the directive key
type gnuFlags map[string]gnuFlag

// Both spellings share the same variable
func setFlagString(flags *flag.FlagSet, short, long, value, usage string) *string {
	var flagVar *string
	if len(short) > 0 {
		flagVar = flags.String(short, value, usage)
	}
	if len(long) > 0 {
		if flagVar == nil {
			flagVar = flags.String(long, value, usage)
		} else {
			flags.StringVar(flagVar, long, value, usage)
		}
	}
	return flagVar
}

// Check if either Long or Short flag is used
func lookupGnuArg(name string, known gnuFlags) (string, error) {
	for k, v := range known {
		if name == v.Short || name == v.Long {
			return k, nil
		}
	}
	return "", errors.New("script: unable to parse arguments")
}

func directiveFlags(d Dialect) (gnuFlags, *flag.FlagSet) {
	flags := flag.NewFlagSet(d.Name, flag.ContinueOnError)
	flags.SetOutput(ioutil.Discard)
	options := make(gnuFlags)
	for _, key := range DirectiveKeys {
		prefix, ok := d.Prefixes[key]
		if !ok {
			continue
		}
		fields := strings.Fields(prefix)
		short := ""
		if len(fields) > 1 {
			short = strings.TrimLeft(fields[1], "-")
		}
		long := d.LongNames[key]
		if len(short) == 0 && len(long) == 0 {
			continue
		}
		options[key] = gnuFlag{
			Short: short,
			Long:  long,
			Value: setFlagString(flags, short, long, "", key),
		}
	}
	return options, flags
}

// parseDirectiveArgs returns directive key -> value for one directive line.
func parseDirectiveArgs(d Dialect, args []string) (map[string]string, error) {
	options, flags := directiveFlags(d)
	if err := flags.Parse(false, args); err != nil {
		return nil, err
	}
	if flags.NArg() > 0 {
		return nil, errors.New("script: unexpected arguments: " + strings.Join(flags.Args(), " "))
	}
	values := make(map[string]string)
	var lookupErr error
	flags.Visit(func(f *flag.Flag) {
		key, err := lookupGnuArg(f.Name, options)
		if err != nil {
			lookupErr = err
			return
		}
		values[key] = f.Value.String()
	})
	return values, lookupErr
}

// ParseScript reads the shell line and the leading directive block of a
// batch script. Directive lines the dialect does not know are kept in
// Unsupported.
func ParseScript(d Dialect, r io.Reader) (Script, error) {
	script := Script{Shell: d.shell()}
	marker := d.Marker()
	if len(marker) == 0 {
		return script, errors.New("script: " + d.Name + " has no directives")
	}
	scanner := bufio.NewScanner(r)
	first := true
	parsed := false
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			if strings.HasPrefix(line, "#!") {
				script.Shell = line
				continue
			}
		}
		if !parsed {
			if len(strings.TrimSpace(line)) == 0 {
				continue
			}
			if fields := strings.Fields(line); fields[0] == marker {
				values, err := parseDirectiveArgs(d, fields[1:])
				if err != nil {
					logger.WarningPrintf("script: unsupported directive %q: %v", line, err)
					script.Unsupported = append(script.Unsupported, line)
					continue
				}
				for _, key := range DirectiveKeys {
					if value, ok := values[key]; ok {
						if err := script.Options.SetDirective(key, value); err != nil {
							return script, err
						}
					}
				}
				continue
			}
			parsed = true
		}
		script.Commands = append(script.Commands, line)
	}
	if err := scanner.Err(); err != nil {
		return script, err
	}
	return script, nil
}

// Job rebuilds a job from the script, directives regenerated from the
// parsed options.
func (s Script) Job(d Dialect, name string) *Job {
	opts := s.Options
	opts.JobName = name
	opts.Cmd = s.Commands
	if len(s.Shell) > 0 {
		d.Shell = s.Shell
	}
	return NewJob(d, opts)
}
