package view

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed navigation.yaml
var navigationYAML []byte

// MenuItem 后台侧边栏的一项
type MenuItem struct {
	Key      string `yaml:"key" json:"key"`
	Label    string `yaml:"label" json:"label"`
	Path     string `yaml:"path" json:"path"`
	Icon     string `yaml:"icon" json:"icon"`
	Endpoint string `yaml:"endpoint" json:"endpoint,omitempty"`
	Active   bool   `yaml:"-" json:"active"`
}

// Option 下拉框选项
type Option struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// Navigation 后台菜单与各表单的下拉选项
type Navigation struct {
	Menu    []MenuItem          `yaml:"menu" json:"menu"`
	Options map[string][]Option `yaml:"options" json:"options"`
}

var (
	navigationOnce sync.Once
	navigation     Navigation
	navigationErr  error
)

// LoadNavigation 解析内置的 navigation.yaml，结果只解析一次。
func LoadNavigation() (Navigation, error) {
	navigationOnce.Do(func() {
		navigation, navigationErr = ParseNavigation(navigationYAML)
	})
	if navigationErr != nil {
		return Navigation{}, navigationErr
	}
	return navigation.clone(), nil
}

// ParseNavigation 解析菜单配置并校验 key 唯一
func ParseNavigation(raw []byte) (Navigation, error) {
	var nav Navigation
	if err := yaml.Unmarshal(raw, &nav); err != nil {
		return Navigation{}, fmt.Errorf("parse navigation: %w", err)
	}
	seen := make(map[string]bool, len(nav.Menu))
	for _, item := range nav.Menu {
		if item.Key == "" || item.Path == "" {
			return Navigation{}, fmt.Errorf("parse navigation: menu item %q needs key and path", item.Label)
		}
		if seen[item.Key] {
			return Navigation{}, fmt.Errorf("parse navigation: duplicate menu key %q", item.Key)
		}
		seen[item.Key] = true
	}
	return nav, nil
}

// WithActive 返回标记了当前页面的菜单副本
func (n Navigation) WithActive(key string) Navigation {
	out := n.clone()
	for i := range out.Menu {
		out.Menu[i].Active = out.Menu[i].Key == key
	}
	return out
}

// Item 按 key 查找菜单项
func (n Navigation) Item(key string) (MenuItem, bool) {
	for _, item := range n.Menu {
		if item.Key == key {
			return item, true
		}
	}
	return MenuItem{}, false
}

func (n Navigation) clone() Navigation {
	out := Navigation{
		Menu:    append([]MenuItem(nil), n.Menu...),
		Options: make(map[string][]Option, len(n.Options)),
	}
	for key, options := range n.Options {
		out.Options[key] = append([]Option(nil), options...)
	}
	return out
}
