package monitoring

import (
	"strings"
)

// getSegmentName turns a runtime function name into a short segment name,
// e.g. "github.com/org/repo/internal/services.(*intent).Submit" becomes
// "services.intent.Submit".
func getSegmentName(fullFuncName string) string {
	name := fullFuncName[strings.LastIndex(fullFuncName, "/")+1:]

	parts := strings.Split(name, ".")
	result := parts[:0]
	for _, p := range parts {
		p = strings.Trim(p, "(*)")
		if p != "" {
			result = append(result, p)
		}
	}

	return strings.Join(result, ".")
}
