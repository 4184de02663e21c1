// Package fuel computes the fuel a module needs to be launched: the base
// requirement for its mass plus the fuel required to carry that fuel.
package fuel
