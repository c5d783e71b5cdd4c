package interfaces

// Flight — то, что циклу бросков нужно от игровой сессии.
type Flight interface {
	Reset()
	Generation() uint64
	Busy() bool
}
