// Package bind subscribes presentation nodes to observables so the tree
// updates in place when state changes.
//
// A UI is described as a tree of instructions. Node producers (Element,
// Text) materialize a node on first use and cache it. Behaviors (OnClick,
// OnEnter, BindValue, Each) attach to the element that contains them.
//
//	name := reactive.New("")
//	todos := reactive.NewList[string]()
//
//	app := bind.Div(
//	    bind.H1(bind.Text("Hello ", name)),
//	    bind.Input(
//	        bind.BindValue(name),
//	        bind.OnEnter(func() { todos.Push(name.Get()) }),
//	    ),
//	    bind.Ul(bind.Each(todos, func(s string) bind.NodeProducer {
//	        return bind.Li(bind.Text(s))
//	    })),
//	)
//	root := bind.Mount(doc, body, app)
//	defer root.Unmount()
//
// Subscriptions are never released implicitly. Removing a subtree requires
// Disconnect on its root instruction, which recurses into every child.
package bind
