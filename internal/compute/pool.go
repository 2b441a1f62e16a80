package compute

import "sync"

// VecPool recycles state vectors of a fixed dimension across runs.
type VecPool struct {
	pool sync.Pool
	size int
}

func NewVecPool(ndim int) *VecPool {
	return &VecPool{
		size: ndim,
		pool: sync.Pool{
			New: func() interface{} {
				return make([]float64, ndim)
			},
		},
	}
}

func (p *VecPool) Get() []float64 {
	return p.pool.Get().([]float64)
}

func (p *VecPool) Put(v []float64) {
	if len(v) == p.size {
		for i := range v {
			v[i] = 0
		}
		p.pool.Put(v)
	}
}

func (p *VecPool) GetAndCopy(src []float64) []float64 {
	dst := p.Get()
	copy(dst, src)
	return dst
}
