/*
Package point provides integer cell coordinates and inclusive cell boxes for
addressing a row-major grid.

Point is cast-compatible with the core "image".Point; Box is not, since its
BottomRight corner is inclusive (a 1x1 box has TopLeft == BottomRight), which
is what window scans over grid cells want.
*/
package point
