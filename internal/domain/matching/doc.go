// Package matching contiene el núcleo del matcher: vector de features,
// estandarización por especie, puntaje por distancia y ranking top-K.
// No hace I/O; todo lo que consume llega ya cargado.
package matching
