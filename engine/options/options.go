package options

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
)

// Build are the options flags for the "<engine> build" command.
type Build struct {
	Tag      string   `flag:"-t"`         // Name and optionally a tag (format: name:tag)
	Platform string   `flag:"--platform"` // Set target platform for build
	Secret   []string `flag:"--secret"`   // Secret to expose to the build (format: id=mysecret,src=/local/secret)
	File     string   `flag:"-f"`         // Name of the Dockerfile
}

// RunContainer are the options flags for the "<engine> run" command.
type RunContainer struct {
	InteractiveTTY bool     `flag:"-it"`        // Keep STDIN open and allocate a pseudo-TTY
	Remove         bool     `flag:"--rm"`       // Automatically remove the container when it exits
	Platform       string   `flag:"--platform"` // Set platform if server is multi-platform capable
	Volume         []string `flag:"-v"`         // Bind mount a volume (format: src:dst)
	WorkDir        string   `flag:"-w"`         // Working directory inside the container
}

// Version are the options flags for the "<engine> version" command.
type Version struct {
	Format string `flag:"--format"` // Format output using a Go template
}

// ToArgs creates an array of strings that you can pass to exec.Command(...) as CLI args.
//
// Fields without a "flag" tag are skipped, as are zero values unless the tag
// carries ",keepZero". Bools emit just the flag name, slices repeat the flag
// once per element, and maps are joined as sorted key=value pairs.
func ToArgs(s any) []string {
	sv := reflect.ValueOf(s)
	for sv.Kind() == reflect.Pointer {
		if sv.IsNil() {
			return nil
		}
		sv = sv.Elem()
	}
	st := sv.Type()

	var ret []string
	for i := range st.NumField() {
		field := st.Field(i)
		flagTag, ok := field.Tag.Lookup("flag")
		if !ok {
			continue
		}
		flagParts := strings.Split(flagTag, ",")
		flagName := flagParts[0]
		keepZero := len(flagParts) > 1 && strings.EqualFold(flagParts[1], "keepZero")

		fv := sv.Field(i)
		if !keepZero && fv.IsZero() {
			continue
		}
		if ret == nil {
			ret = []string{}
		}

		switch field.Type.Kind() {
		case reflect.Bool:
			ret = append(ret, flagName)
		case reflect.Slice:
			for j := range fv.Len() {
				ret = append(ret, flagName, fmt.Sprintf("%v", fv.Index(j).Interface()))
			}
		case reflect.Map:
			m := fv.Interface().(map[string]string)
			mapVals := []string{}
			for _, k := range slices.Sorted(maps.Keys(m)) {
				mapVals = append(mapVals, fmt.Sprintf("%v=%v", k, m[k]))
			}
			ret = append(ret, flagName, strings.Join(mapVals, ","))
		default:
			ret = append(ret, flagName, fmt.Sprintf("%v", fv.Interface()))
		}
	}
	return ret
}
