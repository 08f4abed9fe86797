package sim

import "sync"

// TempPool recycles per-step temperature and heat buffers of a fixed body count.
type TempPool struct {
	pool sync.Pool
	size int
}

func NewTempPool(size int) *TempPool {
	return &TempPool{
		size: size,
		pool: sync.Pool{
			New: func() interface{} {
				return make([]float64, size)
			},
		},
	}
}

func (p *TempPool) Get() []float64 {
	return p.pool.Get().([]float64)
}

func (p *TempPool) Put(s []float64) {
	if len(s) == p.size {
		for i := range s {
			s[i] = 0
		}
		p.pool.Put(s)
	}
}
