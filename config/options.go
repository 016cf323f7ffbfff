package config

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// AccountManager 客户经理
type AccountManager struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// Options 筛选面板可选项，只读枚举，由部署方提供
type Options struct {
	InteractionTypes []string         `yaml:"interaction_types" json:"interactionTypes"`
	Priorities       []string         `yaml:"priorities" json:"priorities"`
	AccountManagers  []AccountManager `yaml:"account_managers" json:"accountManagers"`
}

// DefaultOptions 未提供配置文件时使用的默认可选项
func DefaultOptions() *Options {
	return &Options{
		InteractionTypes: []string{"call", "email", "meeting"},
		Priorities:       []string{"High", "Medium", "Low"},
		AccountManagers:  []AccountManager{},
	}
}

// LoadOptions 从 YAML 文件加载可选项，path 为空时返回默认值。
// 文件中缺省的列表沿用默认值。
func LoadOptions(path string) (*Options, error) {
	opts := DefaultOptions()
	if path == "" {
		return opts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取可选项文件失败: %w", err)
	}

	var fromFile Options
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return nil, fmt.Errorf("解析可选项文件失败: %w", err)
	}

	if len(fromFile.InteractionTypes) > 0 {
		opts.InteractionTypes = fromFile.InteractionTypes
	}
	if len(fromFile.Priorities) > 0 {
		opts.Priorities = fromFile.Priorities
	}
	for _, am := range fromFile.AccountManagers {
		if am.ID == "" {
			return nil, fmt.Errorf("客户经理缺少 id: %q", am.Name)
		}
		if am.Name == "" {
			am.Name = am.ID
		}
		opts.AccountManagers = append(opts.AccountManagers, am)
	}

	return opts, nil
}

// HasInteractionType 是否为已知的互动类型
func (o *Options) HasInteractionType(t string) bool {
	return slices.Contains(o.InteractionTypes, t)
}
