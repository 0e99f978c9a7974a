// Package extensibility holds pluggable pieces that sit around a widget
// machine without changing it: dispatch decorators, event sources feeding a
// machine from channels or timers, and the expression language scenario
// files assert with.
package extensibility
