package config

import (
	"bytes"
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	foundationerrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return foundationerrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "stat config file").
			WithContext("path", configPath).
			Build()
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Example()); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryInternal, "encode example config").Build()
	}
	if err := enc.Close(); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryInternal, "encode example config").Build()
	}

	if err := os.WriteFile(configPath, buf.Bytes(), 0o644); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}

// Example returns the configuration written by Init: a notes site on Rust
// with its full sidebar.
func Example() *Config {
	return &Config{
		Version:  CurrentVersion,
		Site:     SiteConfig{Title: "编程语言 Rust 笔记", Dest: "./docs", Source: "./src", Language: "zh"},
		Markdown: MarkdownConfig{LineNumbers: true},
		Theme:    ThemeConfig{Navbar: false, Search: false},
		Nav:      NavConfig{GroupPages: nav.GroupPagesInclude},
		Logging:  LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
		Sidebar:  exampleSidebar(),
	}
}

func exampleSidebar() nav.RawList {
	L := nav.Leaf
	return nav.RawList{
		nav.Page("Rust Note", "/"),
		nav.Group("项目管理", L("/cargo"), L("/package-and-crate"), L("/module")),
		nav.Group("通用编程概念",
			L("/variable"),
			L("/data-type"),
			L("/struct"),
			L("/enumeration"),
			nav.Page("集合", "/collections/",
				L("/collections/vector"),
				L("/collections/string"),
				L("/collections/hashmap"),
			),
			nav.Page("智能指针", "/smart-pointer/",
				L("/smart-pointer/box"),
				L("/smart-pointer/deref-trait"),
				L("/smart-pointer/drop-trait"),
				L("/smart-pointer/rc"),
				L("/smart-pointer/refcell"),
				L("/smart-pointer/reference-cycles-and-memory-leak"),
			),
			L("/function"),
			L("/control-flow"),
			L("/error-handling"),
			L("/comment"),
		),
		nav.Group("所有权", L("/ownership")),
		nav.Group("抽象", L("/generic-type"), L("/trait")),
		nav.Group("生命周期", L("/lifetime")),
		nav.Group("并发编程",
			L("/concurrent/intro"),
			L("/concurrent/process-and-thread"),
			L("/concurrent/thread-models"),
			L("/concurrent/create-thread"),
			L("/concurrent/communication"),
			L("/concurrent/share-state"),
			L("/concurrent/extensible"),
		),
		nav.Group("测试",
			L("/testing/write"),
			L("/testing/run"),
			L("/testing/result"),
			L("/testing/unit-and-integration"),
		),
		nav.Group("模式匹配",
			L("/pattern-matching/intro"),
			L("/pattern-matching/places-for-patterns"),
			L("/pattern-matching/refutability"),
			L("/pattern-matching/syntax"),
		),
		nav.Group("编程范式",
			nav.Page("函数式编程特性", "/programming-paradigm/functional-language-features/",
				L("/programming-paradigm/functional-language-features/closure"),
				L("/programming-paradigm/functional-language-features/iterator"),
				L("/programming-paradigm/functional-language-features/performance"),
			),
			nav.Page("面向对象特性", "/programming-paradigm/object-oriented-programming-features/",
				L("/programming-paradigm/object-oriented-programming-features/oo-intro"),
				L("/programming-paradigm/object-oriented-programming-features/trait-object"),
				L("/programming-paradigm/object-oriented-programming-features/oo-design-patterns"),
			),
		),
		nav.Group("高级特性",
			L("/advanced-features/"),
			L("/advanced-features/unsafe-rust"),
			L("/advanced-features/advanced-lifetime"),
			L("/advanced-features/advanced-trait"),
			L("/advanced-features/advanced-types"),
			L("/advanced-features/advanced-function-and-closure"),
			L("/advanced-features/macros"),
		),
	}
}
