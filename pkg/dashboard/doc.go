// Package dashboard models dashboards and their widgets and decides where
// new widgets go.
//
// A [Dashboard] owns an ordered list of [Widget] values. A widget with a nil
// Layout has not been positioned yet. [AssignDefaultLayout] positions all
// such widgets at once, threading the column depths from one placement to the
// next. [AddWidget] appends a single widget after deriving the depths from the
// dashboard's current layout. [MobileLayout] flattens a desktop layout into
// one stacked column.
package dashboard
