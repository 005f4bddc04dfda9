package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/KimNorgaard/go-janconf"
	"github.com/scott-cotton/cli"
	"gopkg.in/yaml.v3"
)

func toYAML(cfg *YAMLConfig, cc *cli.Context, args []string) error {
	args, err := cfg.YAML.Parse(cc, args)
	if err != nil {
		cfg.YAML.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	for i, file := range inputs(args) {
		src, err := readInput(cc.In, file)
		if err != nil {
			return err
		}
		doc, err := janconf.Parse(src, cfg.MainConfig.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error parsing %s: %w", displayName(file), err)
		}
		if i > 0 {
			if _, err := io.WriteString(cc.Out, "---\n"); err != nil {
				return fmt.Errorf("unable to write separator: %w", err)
			}
		}
		if err := writeYAML(cc.Out, doc); err != nil {
			return err
		}
	}
	return nil
}

func writeYAML(w io.Writer, doc *janconf.Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlNode(doc)); err != nil {
		return err
	}
	return enc.Close()
}

// yamlNode converts doc to a YAML mapping. Every scalar is tagged as a
// string and entry comments become head comments on the key.
func yamlNode(doc *janconf.Document) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for key, e := range doc.All() {
		k := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
		if e.Comment != nil {
			k.HeadComment = yamlComment(*e.Comment)
		}
		var v *yaml.Node
		switch val := e.Value.(type) {
		case janconf.Scalar:
			v = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(val)}
		case *janconf.Document:
			v = yamlNode(val)
		}
		node.Content = append(node.Content, k, v)
	}
	return node
}

func yamlComment(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = "#"
			continue
		}
		lines[i] = "# " + line
	}
	return strings.Join(lines, "\n")
}
