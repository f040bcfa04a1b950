// Package observable provides reactive property and collection observation:
// objects whose named attributes, and containers whose contents, can be
// watched by external callbacks with thread-safe registration and
// synchronous, in-order notification dispatch.
//
// Three containers share one observation model:
//
//   - Object: a set of declared properties; every write through Set stores
//     the value and notifies that property's observers.
//   - List: an ordered sequence whose mutations are classified into
//     ListModificationType tags.
//   - Dict: a map whose mutations are classified into DictModificationType tags.
//
// Observers are built with On (no arguments), OnValue (new value or change
// payload), or OnChange (old and new value, or before/after snapshots), and
// may be weakly bound to an owner with Bound or WithOwner so the registry
// never keeps an otherwise-unreachable owner alive.
//
// Each instance owns one re-entrant lock guarding both its state and its
// notification dispatch: writes to two different instances never contend,
// and a callback may write another observed property or container on the
// same instance without deadlocking. Dispatch is synchronous and sequential
// on the mutating goroutine - no fan-out, no queuing. A panicking callback
// propagates to the mutating caller; callbacks scheduled ahead of it have
// already run and locks are released on the way out.
//
// Common usage pattern:
//
//	person, _ := observable.NewObject([]observable.Property{
//		observable.Prop("name", ""),
//		observable.Prop("age", 0),
//	})
//
//	watcher := observable.OnChange(func(old, new any) {
//		fmt.Printf("age: %v -> %v\n", old, new)
//	})
//	_ = person.AddObserver("age", watcher)
//
//	_ = person.Set("age", 35) // watcher fires with (0, 35)
//
//	tags, _ := observable.NewList([]string{"a", "b"})
//	_ = tags.AddObserver(observable.On(func() { fmt.Println("tags changed") }))
//	_ = tags.AddObserver(
//		observable.OnValue(func(v any) {
//			change := v.(observable.ListChange[string])
//			fmt.Println("appended:", change.Items)
//		}),
//		observable.ListModificationAppend,
//	)
//
//	tags.Append("c") // catch-all fires first, then the append observer
package observable
