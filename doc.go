/*
 * doc.go, part of goprep.
 *
 * Copyright 2023 Raul Mera <rmeraaATacademicosDOTutaDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

/*Package prep prepares molecular structures for force-field-based simulation.
It is a companion to the goChem library, on whose types it relies for
coordinates and structure I/O.

	**goprep capabilities**

    Translates atom and residue naming conventions between force fields,
	driven by a tabular rule file, reordering atoms into the order the
	target convention expects.

    Regroups the renamed structure into segments bounded by terminal
	markers, renumbering residues.

    Converts boundary atoms into synthetic terminal cap residues (ACE/NME
	by default on protein chains).

    Detects and patches disulfide bridges.

    The amber subpackage sequences these stages around a tleap run,
	including neutralization/salination with a single bounded rebuild.

All stages work on the Structure type, a record-of-arrays over atoms with an
explicit, bijection-checked reorder contract. Operations are synchronous and
single-threaded; errors are fatal and never retried internally.
*/
package prep
