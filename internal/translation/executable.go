package translation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"horse.fit/honyaku/internal/shellenv"
)

// PlamoExecutable is the local translation CLI searched for on disk.
const PlamoExecutable = "plamo-translate"

// ExecutableSource labels the search tier that produced a path.
type ExecutableSource int

const (
	SourceShellDir ExecutableSource = iota + 1
	SourceCommonDir
	SourceLoginPATH
)

func (s ExecutableSource) String() string {
	switch s {
	case SourceShellDir:
		return "shell_dir"
	case SourceCommonDir:
		return "common_dir"
	case SourceLoginPATH:
		return "login_path"
	default:
		return "unknown"
	}
}

// ResolvedExecutable is the invocation target of one local translation.
type ResolvedExecutable struct {
	Path   string
	Source ExecutableSource
}

// ExecutableResolver locates a CLI tool installed outside the impoverished
// Quick Action PATH. Tiers, cheapest first: directories favored by the
// user's shell family, the common install directories, then every entry of
// the login shell's PATH. Resolution runs fresh on every invocation.
type ExecutableResolver struct {
	name         string
	probe        *shellenv.Probe
	home         string
	isExecutable func(string) bool
}

func NewExecutableResolver(name string, probe *shellenv.Probe, home string) *ExecutableResolver {
	if probe == nil {
		probe = shellenv.NewProbe("", 0, nil)
	}
	return &ExecutableResolver{
		name:         strings.TrimSpace(name),
		probe:        probe,
		home:         strings.TrimSpace(home),
		isExecutable: isExecutableFile,
	}
}

// Resolve returns the first matching executable. The not-found error lists
// every probed location so the dialog can show where the search went.
func (r *ExecutableResolver) Resolve(ctx context.Context) (ResolvedExecutable, error) {
	var (
		probed []string
		seen   = make(map[string]struct{})
	)

	try := func(dir string, source ExecutableSource) (ResolvedExecutable, bool) {
		candidate := filepath.Join(dir, r.name)
		if _, ok := seen[candidate]; ok {
			return ResolvedExecutable{}, false
		}
		seen[candidate] = struct{}{}
		probed = append(probed, candidate)
		if r.isExecutable(candidate) {
			return ResolvedExecutable{Path: candidate, Source: source}, true
		}
		return ResolvedExecutable{}, false
	}

	for _, dir := range shellInstallDirs(r.probe.Kind(), r.home) {
		if found, ok := try(dir, SourceShellDir); ok {
			return found, nil
		}
	}
	for _, dir := range commonInstallDirs(r.home) {
		if found, ok := try(dir, SourceCommonDir); ok {
			return found, nil
		}
	}

	dirs, pathErr := r.probe.LoginPATH(ctx)
	for _, dir := range dirs {
		if found, ok := try(dir, SourceLoginPATH); ok {
			return found, nil
		}
	}

	return ResolvedExecutable{}, &Error{
		Kind:   ErrExecutableNotFound,
		Detail: r.notFoundDetail(probed, pathErr),
		cause:  pathErr,
	}
}

func (r *ExecutableResolver) notFoundDetail(probed []string, pathErr error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Shell: %s (%s)\n", r.probe.ShellPath(), r.probe.Kind())
	if pathErr != nil {
		b.WriteString("The login shell PATH could not be read.\n")
	}
	fmt.Fprintf(&b, "Probed locations (%d):\n", len(probed))
	for _, p := range probed {
		fmt.Fprintf(&b, "- %s\n", p)
	}
	return strings.TrimRight(b.String(), "\n")
}

// shellInstallDirs lists where each shell family's users typically install
// CLI tools.
func shellInstallDirs(kind shellenv.Kind, home string) []string {
	switch kind {
	case shellenv.KindFish:
		return dropEmpty(homeJoin(home, ".local", "bin"), "/opt/homebrew/bin")
	case shellenv.KindZsh:
		return dropEmpty("/opt/homebrew/bin", "/usr/local/bin")
	case shellenv.KindBash:
		return dropEmpty("/usr/local/bin", homeJoin(home, "bin"))
	default:
		return nil
	}
}

func commonInstallDirs(home string) []string {
	return dropEmpty(
		homeJoin(home, ".local", "bin"),
		"/opt/homebrew/bin",
		"/usr/local/bin",
	)
}

func homeJoin(home string, parts ...string) string {
	if home == "" {
		return ""
	}
	return filepath.Join(append([]string{home}, parts...)...)
}

func dropEmpty(dirs ...string) []string {
	out := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		if dir != "" {
			out = append(out, dir)
		}
	}
	return out
}

func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}
