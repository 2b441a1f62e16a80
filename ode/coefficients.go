package ode

import "gonum.org/v1/gonum/mat"

// Butcher arrays of the classic and embedded methods. Sources: Hairer,
// Norsett & Wanner, "Solving Ordinary Differential Equations I" (Table 1.1,
// 2.1-2.6) and the published DVERK and RKF coefficient sets.

func rk2Tableau() *tableau {
	return newTableau(
		[][]float64{
			{0.5},
		},
		[]float64{0, 1},
		[]float64{0, 0.5},
		nil,
	)
}

func rk3Tableau() *tableau {
	return newTableau(
		[][]float64{
			{0.5},
			{-1, 2},
		},
		[]float64{1.0 / 6.0, 2.0 / 3.0, 1.0 / 6.0},
		[]float64{0, 0.5, 1},
		nil,
	)
}

func heun3Tableau() *tableau {
	return newTableau(
		[][]float64{
			{1.0 / 3.0},
			{0, 2.0 / 3.0},
		},
		[]float64{0.25, 0, 0.75},
		[]float64{0, 1.0 / 3.0, 2.0 / 3.0},
		nil,
	)
}

func rk4Tableau() *tableau {
	return newTableau(
		[][]float64{
			{0.5},
			{0, 0.5},
			{0, 0, 1},
		},
		[]float64{1.0 / 6.0, 1.0 / 3.0, 1.0 / 3.0, 1.0 / 6.0},
		[]float64{0, 0.5, 0.5, 1},
		nil,
	)
}

func rk4altTableau() *tableau {
	return newTableau(
		[][]float64{
			{1.0 / 3.0},
			{-1.0 / 3.0, 1},
			{1, -1, 1},
		},
		[]float64{1.0 / 8.0, 3.0 / 8.0, 3.0 / 8.0, 1.0 / 8.0},
		[]float64{0, 1.0 / 3.0, 2.0 / 3.0, 1},
		nil,
	)
}

func mdEulerTableau() *tableau {
	return newTableau(
		[][]float64{
			{1},
		},
		[]float64{0.5, 0.5},
		[]float64{0, 1},
		[]float64{-0.5, 0.5},
	)
}

func merson4Tableau() *tableau {
	return newTableau(
		[][]float64{
			{1.0 / 3.0},
			{1.0 / 6.0, 1.0 / 6.0},
			{1.0 / 8.0, 0, 3.0 / 8.0},
			{0.5, 0, -1.5, 2},
		},
		[]float64{1.0 / 6.0, 0, 0, 2.0 / 3.0, 1.0 / 6.0},
		[]float64{0, 1.0 / 3.0, 1.0 / 3.0, 0.5, 1},
		[]float64{1.0 / 15.0, 0, -3.0 / 10.0, 4.0 / 15.0, -1.0 / 30.0},
	)
}

func zonneveld4Tableau() *tableau {
	return newTableau(
		[][]float64{
			{0.5},
			{0, 0.5},
			{0, 0, 1},
			{5.0 / 32.0, 7.0 / 32.0, 13.0 / 32.0, -1.0 / 32.0},
		},
		[]float64{1.0 / 6.0, 1.0 / 3.0, 1.0 / 3.0, 1.0 / 6.0, 0},
		[]float64{0, 0.5, 0.5, 1, 0.75},
		[]float64{2.0 / 3.0, -2, -2, -2, 16.0 / 3.0},
	)
}

func fehlberg4Tableau() *tableau {
	return newTableau(
		[][]float64{
			{0.25},
			{3.0 / 32.0, 9.0 / 32.0},
			{1932.0 / 2197.0, -7200.0 / 2197.0, 7296.0 / 2197.0},
			{439.0 / 216.0, -8, 3680.0 / 513.0, -845.0 / 4104.0},
			{-8.0 / 27.0, 2, -3544.0 / 2565.0, 1859.0 / 4104.0, -11.0 / 40.0},
		},
		[]float64{25.0 / 216.0, 0, 1408.0 / 2565.0, 2197.0 / 4104.0, -1.0 / 5.0, 0},
		[]float64{0, 0.25, 3.0 / 8.0, 12.0 / 13.0, 1, 0.5},
		[]float64{-1.0 / 360.0, 0, 128.0 / 4275.0, 2197.0 / 75240.0, -1.0 / 50.0, -2.0 / 55.0},
	)
}

func dopri5Tableau() *tableau {
	t := newTableau(
		[][]float64{
			{1.0 / 5.0},
			{3.0 / 40.0, 9.0 / 40.0},
			{44.0 / 45.0, -56.0 / 15.0, 32.0 / 9.0},
			{19372.0 / 6561.0, -25360.0 / 2187.0, 64448.0 / 6561.0, -212.0 / 729.0},
			{9017.0 / 3168.0, -355.0 / 33.0, 46732.0 / 5247.0, 49.0 / 176.0, -5103.0 / 18656.0},
			{35.0 / 384.0, 0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0},
		},
		[]float64{35.0 / 384.0, 0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0, 0},
		[]float64{0, 1.0 / 5.0, 3.0 / 10.0, 4.0 / 5.0, 8.0 / 9.0, 1, 1},
		[]float64{71.0 / 57600.0, 0, -71.0 / 16695.0, 71.0 / 1920.0, -17253.0 / 339200.0, 22.0 / 525.0, -1.0 / 40.0},
	)
	t.d = mat.NewDense(1, 7, []float64{
		-12715105075.0 / 11282082432.0,
		0,
		87487479700.0 / 32700410799.0,
		-10690763975.0 / 1880347072.0,
		701980252875.0 / 199316789632.0,
		-1453857185.0 / 822651844.0,
		69997945.0 / 29380423.0,
	})
	return t
}

func verner6Tableau() *tableau {
	return newTableau(
		[][]float64{
			{1.0 / 6.0},
			{4.0 / 75.0, 16.0 / 75.0},
			{5.0 / 6.0, -8.0 / 3.0, 5.0 / 2.0},
			{-165.0 / 64.0, 55.0 / 6.0, -425.0 / 64.0, 85.0 / 96.0},
			{12.0 / 5.0, -8, 4015.0 / 612.0, -11.0 / 36.0, 88.0 / 255.0},
			{-8263.0 / 15000.0, 124.0 / 75.0, -643.0 / 680.0, -81.0 / 250.0, 2484.0 / 10625.0, 0},
			{3501.0 / 1720.0, -300.0 / 43.0, 297275.0 / 52632.0, -319.0 / 2322.0, 24068.0 / 84065.0, 0, 3850.0 / 26703.0},
		},
		[]float64{3.0 / 40.0, 0, 875.0 / 2244.0, 23.0 / 72.0, 264.0 / 1955.0, 0, 125.0 / 11592.0, 43.0 / 616.0},
		[]float64{0, 1.0 / 6.0, 4.0 / 15.0, 2.0 / 3.0, 5.0 / 6.0, 1, 1.0 / 15.0, 1},
		[]float64{-1.0 / 160.0, 0, -125.0 / 17952.0, 1.0 / 144.0, -12.0 / 1955.0, -3.0 / 44.0, 125.0 / 11592.0, 43.0 / 616.0},
	)
}

func fehlberg7Tableau() *tableau {
	return newTableau(
		[][]float64{
			{2.0 / 27.0},
			{1.0 / 36.0, 1.0 / 12.0},
			{1.0 / 24.0, 0, 1.0 / 8.0},
			{5.0 / 12.0, 0, -25.0 / 16.0, 25.0 / 16.0},
			{1.0 / 20.0, 0, 0, 1.0 / 4.0, 1.0 / 5.0},
			{-25.0 / 108.0, 0, 0, 125.0 / 108.0, -65.0 / 27.0, 125.0 / 54.0},
			{31.0 / 300.0, 0, 0, 0, 61.0 / 225.0, -2.0 / 9.0, 13.0 / 900.0},
			{2, 0, 0, -53.0 / 6.0, 704.0 / 45.0, -107.0 / 9.0, 67.0 / 90.0, 3},
			{-91.0 / 108.0, 0, 0, 23.0 / 108.0, -976.0 / 135.0, 311.0 / 54.0, -19.0 / 60.0, 17.0 / 6.0, -1.0 / 12.0},
			{2383.0 / 4100.0, 0, 0, -341.0 / 164.0, 4496.0 / 1025.0, -301.0 / 82.0, 2133.0 / 4100.0, 45.0 / 82.0, 45.0 / 164.0, 18.0 / 41.0},
			{3.0 / 205.0, 0, 0, 0, 0, -6.0 / 41.0, -3.0 / 205.0, -3.0 / 41.0, 3.0 / 41.0, 6.0 / 41.0, 0},
			{-1777.0 / 4100.0, 0, 0, -341.0 / 164.0, 4496.0 / 1025.0, -289.0 / 82.0, 2193.0 / 4100.0, 51.0 / 82.0, 33.0 / 164.0, 12.0 / 41.0, 0, 1},
		},
		[]float64{41.0 / 840.0, 0, 0, 0, 0, 34.0 / 105.0, 9.0 / 35.0, 9.0 / 35.0, 9.0 / 280.0, 9.0 / 280.0, 41.0 / 840.0, 0, 0},
		[]float64{0, 2.0 / 27.0, 1.0 / 9.0, 1.0 / 6.0, 5.0 / 12.0, 0.5, 5.0 / 6.0, 1.0 / 6.0, 2.0 / 3.0, 1.0 / 3.0, 1, 0, 1},
		[]float64{41.0 / 840.0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 41.0 / 840.0, -41.0 / 840.0, -41.0 / 840.0},
	)
}
