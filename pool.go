package boltzmann

import (
	"sync"
)

var (
	iterPoolLock sync.Mutex
	iterPool     = make(map[int]*sync.Pool)
)

// borrowIterator returns m row headers. n is only used to size freshly allocated rows.
func borrowIterator(m, n int) [][]float64 {
	iterPoolLock.Lock()
	p, ok := iterPool[m]
	iterPoolLock.Unlock()
	if ok {
		return p.Get().([][]float64)
	}
	return make([][]float64, m)
}

// ReturnIterator returns an iterator made by MakeIterator to the pool. The iterator must not
// be used afterwards.
func ReturnIterator(m, n int, it [][]float64) {
	for i := range it {
		it[i] = nil
	}
	iterPoolLock.Lock()
	p, ok := iterPool[m]
	if !ok {
		p = &sync.Pool{
			New: func() interface{} { return make([][]float64, m) },
		}
		iterPool[m] = p
	}
	iterPoolLock.Unlock()
	p.Put(it)
}
