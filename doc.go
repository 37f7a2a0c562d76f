// Package ribbon turns an ordered polyline of straight segments into a
// constant-width ribbon outline: two parallel offset curves whose corners are
// replaced by circular fillets approximated with cubic Bezier arcs.
//
// A closed polyline yields two independent closed loops (outer and inner),
// an open polyline yields one merged loop with flat end caps. The
// interior or exterior fillet radius at each corner is selected from the turn
// angle of the original, un-offset path.
package ribbon
