//go:build generate

// Command schema_generator renders the radar configuration schema and the example
// config files from the config.Config struct tags. Run it from the repository root:
//
//	go run -tags generate ./jsonschema
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	iyaml "github.com/invopop/yaml"
	"github.com/mcuadros/go-defaults"
	"github.com/theopenlane/utils/envparse"

	"github.com/amish-gaur/DataPriv/config"
)

const (
	keyTag       = "koanf"
	skipValue    = "-"
	defaultTag   = "default"
	sensitiveTag = "sensitive"

	envPrefix     = "RADAR"
	modulePath    = "github.com/amish-gaur/DataPriv"
	configPackage = "./config"
	schemaID      = "https://github.com/amish-gaur/DataPriv/jsonschema/radar.config.json"

	filePerm = 0o600
)

// target is one generated file and the function that renders it
type target struct {
	path   string
	render func(cfg *config.Config, comments map[string]string) ([]byte, error)
}

var targets = []target{
	{path: "./jsonschema/radar.config.json", render: renderSchema},
	{path: "./config/config.example.yaml", render: renderYAML},
	{path: "./config/.env.example", render: renderEnv},
}

func main() {
	cfg := &config.Config{}
	defaults.SetDefaults(cfg)

	comments, err := configComments()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	for _, t := range targets {
		data, err := t.render(cfg, comments)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rendering %s: %v\n", t.path, err)
			os.Exit(1)
		}

		if err := os.WriteFile(t.path, data, filePerm); err != nil {
			fmt.Fprintf(os.Stderr, "writing %s: %v\n", t.path, err)
			os.Exit(1)
		}

		fmt.Println("wrote", t.path)
	}
}

// configComments extracts the doc comments of the config package, keyed by qualified type and field name
func configComments() (map[string]string, error) {
	r := &jsonschema.Reflector{}
	if err := r.AddGoComments(modulePath, configPackage); err != nil {
		return nil, fmt.Errorf("reading config comments: %w", err)
	}

	if r.CommentMap == nil {
		return map[string]string{}, nil
	}

	return r.CommentMap, nil
}

func renderSchema(cfg *config.Config, comments map[string]string) ([]byte, error) {
	r := jsonschema.Reflector{
		ExpandedStruct:             true,
		RequiredFromJSONSchemaTags: true,
		FieldNameTag:               keyTag,
		CommentMap:                 comments,
	}

	s := r.Reflect(cfg)
	s.ID = schemaID
	s.Title = "radar configuration"

	return json.MarshalIndent(s, "", "  ")
}

// renderYAML writes the defaults as nested yaml; durations become strings and secrets are blanked
func renderYAML(cfg *config.Config, _ map[string]string) ([]byte, error) {
	return iyaml.Marshal(yamlValue(reflect.ValueOf(cfg)))
}

func yamlValue(v reflect.Value) any {
	v = reflect.Indirect(v)
	if !v.IsValid() {
		return nil
	}

	if v.Type() == durationType {
		return time.Duration(v.Int()).String()
	}

	switch v.Kind() {
	case reflect.Struct:
		out := map[string]any{}

		for i := range v.NumField() {
			field := v.Type().Field(i)

			key := field.Tag.Get(keyTag)
			if !field.IsExported() || key == "" || key == skipValue {
				continue
			}

			if field.Tag.Get(sensitiveTag) == "true" {
				out[key] = ""
				continue
			}

			out[key] = yamlValue(v.Field(i))
		}

		return out
	case reflect.Slice:
		items := make([]any, v.Len())
		for i := range items {
			items[i] = yamlValue(v.Index(i))
		}

		return items
	default:
		return v.Interface()
	}
}

// renderEnv writes one RADAR_SECTION_FIELD line per setting, grouped under the section's doc comment
func renderEnv(cfg *config.Config, comments map[string]string) ([]byte, error) {
	parser := envparse.Config{FieldTagName: keyTag, Skipper: skipValue}

	vars, err := parser.GatherEnvInfo(envPrefix, cfg)
	if err != nil {
		return nil, fmt.Errorf("collecting env vars: %w", err)
	}

	headings := sectionHeadings(comments)

	var (
		b       strings.Builder
		section string
	)

	for _, v := range vars {
		if s := envSection(v.Key); s != section {
			if section != "" {
				b.WriteString("\n")
			}

			section = s

			if heading, ok := headings[s]; ok {
				fmt.Fprintf(&b, "# %s\n", heading)
			}
		}

		if v.Tags.Get(sensitiveTag) == "true" {
			fmt.Fprintf(&b, "# %s is a secret, set it outside of version control\n%s=\"\"\n", v.Key, v.Key)
			continue
		}

		value := v.Tags.Get(defaultTag)
		if v.Type == durationType {
			if d, err := time.ParseDuration(value); err == nil {
				value = d.String()
			}
		}

		fmt.Fprintf(&b, "%s=%q\n", v.Key, value)
	}

	return []byte(b.String()), nil
}

// sectionHeadings maps the upper cased section name of each top level config field to its type comment
func sectionHeadings(comments map[string]string) map[string]string {
	headings := map[string]string{}
	root := reflect.TypeOf(config.Config{})

	for i := range root.NumField() {
		field := root.Field(i)

		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || field.Type.Kind() != reflect.Struct {
			continue
		}

		typeKey := modulePath + "/config." + field.Type.Name()
		if c := strings.TrimSpace(comments[typeKey]); c != "" {
			headings[strings.ToUpper(name)] = c
		}
	}

	return headings
}

// envSection returns SECTION for RADAR_SECTION_FIELD
func envSection(key string) string {
	parts := strings.SplitN(key, "_", 3)
	if len(parts) < 3 {
		return ""
	}

	return parts[1]
}

var durationType = reflect.TypeOf(time.Duration(0))
