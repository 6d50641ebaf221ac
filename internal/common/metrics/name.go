package metrics

import "strings"

var nameReplacer = strings.NewReplacer(" ", "_", ".", "_", "-", "_", "=", "_", "/", "_")

// FlattenName makes name safe for use as a prometheus metric component.
func FlattenName(name string) string {
	return nameReplacer.Replace(name)
}

func BuildFQName(names ...string) string {
	return FlattenName(strings.Join(names, "_"))
}
