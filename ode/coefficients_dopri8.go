package ode

import "gonum.org/v1/gonum/mat"

// Dormand-Prince 8(5,3) coefficients from Hairer's DOP853. The error weights
// e give the 5th-order estimator; the bhh weights subtract a 3rd-order
// combination used to blend the two estimates. The dense output tables (ad,
// cd, d) describe three extra stages and the four highest interpolation
// weight rows; columns 0..11 address the regular stages, column 12 the final
// stage again (in place of an extra end-point evaluation), and columns 13..15
// the extra stages.
const (
	dopri8Bhh1 = 0.244094488188976377952755905512
	dopri8Bhh2 = 0.733846688281611857341361741547
	dopri8Bhh3 = 0.0220588235294117647058823529412
)

func dopri8Tableau() *tableau {
	t := newTableau(
		[][]float64{
			{5.26001519587677318785587544488e-2},
			{1.97250569845378994544595329183e-2, 5.91751709536136983633785987549e-2},
			{2.95875854768068491816892993775e-2, 0, 8.87627564304205475450678981324e-2},
			{2.41365134159266685502369798665e-1, 0, -8.84549479328286085344864962717e-1,
				9.24834003261792003115737966543e-1},
			{3.7037037037037037037037037037e-2, 0, 0, 1.70828608729473871279604482173e-1,
				1.25467687566822425016691814123e-1},
			{3.7109375e-2, 0, 0, 1.70252211019544039314978060272e-1,
				6.02165389804559606850219397283e-2, -1.7578125e-2},
			{3.70920001185047927108779319836e-2, 0, 0, 1.70383925712239993810214054705e-1,
				1.07262030446373284651809199168e-1, -1.53194377486244017527936158236e-2,
				8.27378916381402288758473766002e-3},
			{6.24110958716075717114429577812e-1, 0, 0, -3.36089262944694129406857109825,
				-8.68219346841726006818189891453e-1, 2.75920996994467083049415600797e1,
				2.01540675504778934086186788979e1, -4.34898841810699588477366255144e1},
			{4.77662536438264365890433908527e-1, 0, 0, -2.48811461997166764192642586468,
				-5.90290826836842996371446475743e-1, 2.12300514481811942347288949897e1,
				1.52792336328824235832596922938e1, -3.32882109689848629194453265587e1,
				-2.03312017085086261358222928593e-2},
			{-9.3714243008598732571704021658e-1, 0, 0, 5.18637242884406370830023853209,
				1.09143734899672957818500254654, -8.14978701074692612513997267357,
				-1.85200656599969598641566180701e1, 2.27394870993505042818970056734e1,
				2.49360555267965238987089396762, -3.0467644718982195003823669022},
			{2.27331014751653820792359768449, 0, 0, -1.05344954667372501984066689879e1,
				-2.00087205822486249909675718444, -1.79589318631187989172765950534e1,
				2.79488845294199600508499808837e1, -2.85899827713502369474065508674,
				-8.87285693353062954433549289258, 1.23605671757943030647266201528e1,
				6.43392746015763530355970484046e-1},
		},
		[]float64{
			5.42937341165687622380535766363e-2, 0, 0, 0, 0,
			4.45031289275240888144113950566, 1.89151789931450038304281599044,
			-5.8012039600105847814672114227, 3.1116436695781989440891606237e-1,
			-1.52160949662516078556178806805e-1, 2.01365400804030348374776537501e-1,
			4.47106157277725905176885569043e-2,
		},
		[]float64{
			0,
			5.26001519587677318785587544488e-2,
			7.89002279381515978178381316732e-2,
			1.18350341907227396726757197510e-1,
			2.81649658092772603273242802490e-1,
			1.0 / 3.0,
			0.25,
			3.07692307692307692307692307692e-1,
			6.51282051282051282051282051282e-1,
			0.6,
			8.57142857142857142857142857142e-1,
			1,
		},
		[]float64{
			1.312004499419488073250102996e-2, 0, 0, 0, 0,
			-1.225156446376204440720569753, -4.957589496572501915214079952e-1,
			1.664377182454986536961530415, -3.503288487499736816886487290e-1,
			3.341791187130174790297318841e-1, 8.192320648511571246570742613e-2,
			-2.235530786388629525884427845e-2,
		},
	)
	t.cd = []float64{0.1, 0.2, 7.0 / 9.0}
	t.ad = dopri8DenseA()
	t.d = dopri8DenseD()
	return t
}

func dopri8DenseA() *mat.Dense {
	ad := mat.NewDense(3, 16, nil)

	ad.Set(0, 0, 5.61675022830479523392909219681e-2)
	ad.Set(0, 6, 2.53500210216624811088794765333e-1)
	ad.Set(0, 7, -2.46239037470802489917441475441e-1)
	ad.Set(0, 8, -1.24191423263816360469010140626e-1)
	ad.Set(0, 9, 1.5329179827876569731206322685e-1)
	ad.Set(0, 10, 8.20105229563468988491666602057e-3)
	ad.Set(0, 11, 7.56789766054569976138603589584e-3)
	ad.Set(0, 12, -8.298e-3)

	ad.Set(1, 0, 3.18346481635021405060768473261e-2)
	ad.Set(1, 5, 2.83009096723667755288322961402e-2)
	ad.Set(1, 6, 5.35419883074385676223797384372e-2)
	ad.Set(1, 7, -5.49237485713909884646569340306e-2)
	ad.Set(1, 10, -1.08347328697249322858509316994e-4)
	ad.Set(1, 11, 3.82571090835658412954920192323e-4)
	ad.Set(1, 12, -3.40465008687404560802977114492e-4)
	ad.Set(1, 13, 1.41312443674632500278074618366e-1)

	ad.Set(2, 0, -4.28896301583791923408573538692e-1)
	ad.Set(2, 5, -4.69762141536116384314449447206)
	ad.Set(2, 6, 7.68342119606259904184240953878)
	ad.Set(2, 7, 4.06898981839711007970213554331)
	ad.Set(2, 8, 3.56727187455281109270669543021e-1)
	ad.Set(2, 12, -1.39902416515901462129418009734e-3)
	ad.Set(2, 13, 2.9475147891527723389556272149)
	ad.Set(2, 14, -9.15095847217987001081870187138)

	return ad
}

func dopri8DenseD() *mat.Dense {
	d := mat.NewDense(4, 16, nil)

	d.Set(0, 0, -8.4289382761090128651353491142)
	d.Set(0, 5, 5.6671495351937776962531783590e-1)
	d.Set(0, 6, -3.0689499459498916912797304727)
	d.Set(0, 7, 2.3846676565120698287728149680)
	d.Set(0, 8, 2.1170345824450282767155149946)
	d.Set(0, 9, -8.7139158377797299206789907490e-1)
	d.Set(0, 10, 2.2404374302607882758541771650)
	d.Set(0, 11, 6.3157877876946881815570249290e-1)
	d.Set(0, 12, -8.8990336451333310820698117400e-2)
	d.Set(0, 13, 1.8148505520854727256656404962e1)
	d.Set(0, 14, -9.1946323924783554000451984436)
	d.Set(0, 15, -4.4360363875948939664310572000)

	d.Set(1, 0, 1.0427508642579134603413151009e1)
	d.Set(1, 5, 2.4228349177525818288430175319e2)
	d.Set(1, 6, 1.6520045171727028198505394887e2)
	d.Set(1, 7, -3.7454675472269020279518312152e2)
	d.Set(1, 8, -2.2113666853125306036270938578e1)
	d.Set(1, 9, 7.7334326684722638389603898808)
	d.Set(1, 10, -3.0674084731089398182061213626e1)
	d.Set(1, 11, -9.3321305264302278729567221706)
	d.Set(1, 12, 1.5697238121770843886131091075e1)
	d.Set(1, 13, -3.1139403219565177677282850411e1)
	d.Set(1, 14, -9.3529243588444783865713862664)
	d.Set(1, 15, 3.5816841486394083752465898540e1)

	d.Set(2, 0, 1.9985053242002433820987653617e1)
	d.Set(2, 5, -3.8703730874935176555105901742e2)
	d.Set(2, 6, -1.8917813819516756882830838328e2)
	d.Set(2, 7, 5.2780815920542364900561016686e2)
	d.Set(2, 8, -1.1573902539959630126141871134e1)
	d.Set(2, 9, 6.8812326946963000169666922661)
	d.Set(2, 10, -1.0006050966910838403183860980)
	d.Set(2, 11, 7.7771377980534432092869265740e-1)
	d.Set(2, 12, -2.7782057523535084065932004339)
	d.Set(2, 13, -6.0196695231264120758267380846e1)
	d.Set(2, 14, 8.4320405506677161018159903784e1)
	d.Set(2, 15, 1.1992291136182789328035130030e1)

	d.Set(3, 0, -2.5693933462703749003312586129e1)
	d.Set(3, 5, -1.5418974869023643374053993627e2)
	d.Set(3, 6, -2.3152937917604549567536039109e2)
	d.Set(3, 7, 3.5763911791061412378285349910e2)
	d.Set(3, 8, 9.3405324183624310003907691704e1)
	d.Set(3, 9, -3.7458323136451633156875139351e1)
	d.Set(3, 10, 1.0409964950896230045147246184e2)
	d.Set(3, 11, 2.9840293426660503123344363579e1)
	d.Set(3, 12, -4.3533456590011143754432175058e1)
	d.Set(3, 13, 9.6324553959188282948394950600e1)
	d.Set(3, 14, -3.9177261675615439165231486172e1)
	d.Set(3, 15, -1.4972683625798562581422125276e2)

	return d
}
