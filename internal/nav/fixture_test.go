package nav

// rustNoteSidebar mirrors a real authored sidebar: top-level pages, headers
// with bare routes, page groups nested two levels deep.
func rustNoteSidebar() []RawNode {
	return []RawNode{
		Page("Rust Note", "/"),
		Group("项目管理", Leaf("/cargo"), Leaf("/package-and-crate"), Leaf("/module")),
		Group("通用编程概念",
			Leaf("/variable"),
			Leaf("/data-type"),
			Page("集合", "/collections/",
				Leaf("/collections/vector"),
				Leaf("/collections/string"),
				Leaf("/collections/hashmap"),
			),
			Page("智能指针", "/smart-pointer/",
				Leaf("/smart-pointer/box"),
				Leaf("/smart-pointer/deref-trait"),
				Leaf("/smart-pointer/rc"),
			),
			Leaf("/function"),
		),
		Group("并发编程", Leaf("/concurrent/intro"), Leaf("/concurrent/share-state")),
		Group("模式匹配", Leaf("/pattern-matching/intro"), Leaf("/pattern-matching/syntax")),
		Group("编程范式",
			Page("函数式编程特性", "/programming-paradigm/functional-language-features/",
				Leaf("/programming-paradigm/functional-language-features/closure"),
			),
		),
	}
}

// authoredRoutes lists every route string in raw, in authored order.
func authoredRoutes(raw []RawNode) []string {
	var out []string
	var visit func(RawNode)
	visit = func(r RawNode) {
		switch v := r.(type) {
		case LeafRef:
			out = append(out, string(v))
		case GroupSpec:
			if v.Path != "" {
				out = append(out, v.Path)
			}
			for _, c := range v.Children {
				visit(c)
			}
		}
	}
	for _, r := range raw {
		visit(r)
	}
	return out
}
