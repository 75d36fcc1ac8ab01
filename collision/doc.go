// Package collision connects shapes to game entities. A Collider is indexed
// by a Partition, a uniform grid broad phase, and a Resolver moves a body
// through the partition one contact at a time, handing each contact to a
// Response that decides the velocity for the next leg.
//
// Nothing in this package is safe for concurrent use; call it from the
// simulation loop.
package collision
