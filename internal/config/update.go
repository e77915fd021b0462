package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AddWidget appends a widget to the config file at configPath.
// It preserves the existing YAML structure and comments. A widget whose key
// is already configured is an error.
func AddWidget(configPath string, w WidgetConfig) error {
	if w.Key == "" {
		return fmt.Errorf("widget key is required")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse as yaml.Node to preserve structure
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return fmt.Errorf("invalid YAML document structure")
	}

	docNode := root.Content[0]
	if docNode.Kind != yaml.MappingNode {
		return fmt.Errorf("expected mapping at document root")
	}

	widgetsNode := findMapValue(docNode, "widgets")
	if widgetsNode == nil || (widgetsNode.Kind == yaml.ScalarNode && widgetsNode.Tag == "!!null") {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if widgetsNode == nil {
			keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "widgets"}
			docNode.Content = append(docNode.Content, keyNode, seq)
		} else {
			*widgetsNode = *seq
		}
		widgetsNode = findMapValue(docNode, "widgets")
	}
	if widgetsNode.Kind != yaml.SequenceNode {
		return fmt.Errorf("'widgets' must be a list")
	}

	for _, item := range widgetsNode.Content {
		if keyNode := findMapValue(item, "key"); keyNode != nil && keyNode.Value == w.Key {
			return fmt.Errorf("widget '%s' already exists", w.Key)
		}
	}

	var widgetNode yaml.Node
	if err := widgetNode.Encode(w); err != nil {
		return fmt.Errorf("failed to encode widget: %w", err)
	}
	// Block style even when the list itself was written inline.
	widgetsNode.Style = 0
	widgetsNode.Content = append(widgetsNode.Content, &widgetNode)

	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&root); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	encoder.Close()

	if err := os.WriteFile(configPath, []byte(buf.String()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// findMapValue finds a value in a mapping node by key name.
func findMapValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i < len(node.Content)-1; i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.Value == key {
			return valueNode
		}
	}

	return nil
}

// Marshal renders a config as YAML for writing to disk.
func Marshal(cfg *Config) ([]byte, error) {
	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	encoder.Close()
	return []byte(buf.String()), nil
}
