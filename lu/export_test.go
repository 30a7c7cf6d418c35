package lu

// AllocPivots exposes the guarded pivot allocation to the external tests.
var AllocPivots = allocPivots
