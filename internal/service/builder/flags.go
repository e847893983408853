package builder

import "fmt"

const (
	flagProduction = "--prod"
)

var (
	optimizationFlags = []string{"--aot", "--optimization", "--buildOptimizer"}
	cachingFlags      = []string{"--outputHashing=all", "--namedChunks=false", "--vendorChunk=false"}
	extraFileFlags    = []string{"--sourceMap=false", "--extractLicenses", "--extractCss"}
)

// BuildFlags returns the build tool arguments for an application published under basePath.
func BuildFlags(basePath string, production bool) []string {
	flags := []string{
		fmt.Sprintf("--baseHref=/%s/", basePath),
		fmt.Sprintf("--deployUrl=/%s/", basePath),
	}

	flags = append(flags, optimizationFlags...)
	flags = append(flags, cachingFlags...)
	flags = append(flags, extraFileFlags...)

	if production {
		flags = append(flags, flagProduction)
	}

	return flags
}
