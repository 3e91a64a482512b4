// Package views provides the built-in views: flex containers, text,
// images, scroll views, text inputs, pressables, animations and windows.
//
// Every view is generic over the application data type T it reads from and
// writes to in callbacks:
//
//	func ui(data *Counter) core.View[Counter] {
//	    return views.NewWindow[Counter](
//	        views.Column[Counter](
//	            views.Label[Counter](fmt.Sprintf("count: %d", data.Count)),
//	            views.Press(func(_ *Counter, s views.PressState) core.View[Counter] {
//	                return views.Label[Counter]("add")
//	            }).WithOnPress(func(c *Counter) core.Action {
//	                c.Count++
//	                return core.Rebuild()
//	            }),
//	        ),
//	    )
//	}
//
// Views are values; configure them with the With methods, which return a
// modified copy.
package views
