package checkout

// IDGenerator allocates order ids. NextID only reserves the id the next order
// would get; Commit consumes it once the order is stored, so a failed append
// leaves no gap.
type IDGenerator interface {
	NextID() int64
	Commit(id int64)
}
