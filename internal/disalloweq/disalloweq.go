// Package disalloweq provides a method for disallowing struct comparisons
// with the `==` operator.
package disalloweq

// DisallowEqual can be used to cause the compiler to reject attempts to
// compare structs with the `==` operator. Embed it in any type whose `==`
// would compare something other than the value it represents (e.g. a
// pointer wrapper), where callers should be forced to use an Equal method
// instead.
type DisallowEqual [0]func()
