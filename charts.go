package tambour

// husThreads is the Husqvarna Viking HUS chart.
var husThreads = []Thread{
	{Color: 0x000000, Description: "Black", CatalogNumber: "026", Brand: "Hus"},
	{Color: 0x0000E7, Description: "Blue", CatalogNumber: "005", Brand: "Hus"},
	{Color: 0x00C600, Description: "Green", CatalogNumber: "002", Brand: "Hus"},
	{Color: 0xFF0000, Description: "Red", CatalogNumber: "014", Brand: "Hus"},
	{Color: 0x840084, Description: "Purple", CatalogNumber: "008", Brand: "Hus"},
	{Color: 0xFFFF00, Description: "Yellow", CatalogNumber: "020", Brand: "Hus"},
	{Color: 0x848484, Description: "Grey", CatalogNumber: "024", Brand: "Hus"},
	{Color: 0x8484E7, Description: "Light Blue", CatalogNumber: "006", Brand: "Hus"},
	{Color: 0x00FF84, Description: "Light Green", CatalogNumber: "003", Brand: "Hus"},
	{Color: 0xFF7B31, Description: "Orange", CatalogNumber: "017", Brand: "Hus"},
	{Color: 0xFF8CA5, Description: "Pink", CatalogNumber: "011", Brand: "Hus"},
	{Color: 0x845200, Description: "Brown", CatalogNumber: "028", Brand: "Hus"},
	{Color: 0xFFFFFF, Description: "White", CatalogNumber: "022", Brand: "Hus"},
	{Color: 0x000084, Description: "Dark Blue", CatalogNumber: "004", Brand: "Hus"},
	{Color: 0x008400, Description: "Dark Green", CatalogNumber: "001", Brand: "Hus"},
	{Color: 0x7B0000, Description: "Dark Red", CatalogNumber: "013", Brand: "Hus"},
	{Color: 0xFF6384, Description: "Light Red", CatalogNumber: "015", Brand: "Hus"},
	{Color: 0x522952, Description: "Dark Purple", CatalogNumber: "007", Brand: "Hus"},
	{Color: 0xFF00FF, Description: "Light Purple", CatalogNumber: "009", Brand: "Hus"},
	{Color: 0xFFDE00, Description: "Dark Yellow", CatalogNumber: "019", Brand: "Hus"},
	{Color: 0xFFFF9C, Description: "Light Yellow", CatalogNumber: "021", Brand: "Hus"},
	{Color: 0x525252, Description: "Dark Grey", CatalogNumber: "025", Brand: "Hus"},
	{Color: 0xD6D6D6, Description: "Light Grey", CatalogNumber: "023", Brand: "Hus"},
	{Color: 0xFF5208, Description: "Dark Orange", CatalogNumber: "016", Brand: "Hus"},
	{Color: 0xFF9C5A, Description: "Light Orange", CatalogNumber: "018", Brand: "Hus"},
	{Color: 0xFF52B5, Description: "Dark Pink", CatalogNumber: "010", Brand: "Hus"},
	{Color: 0xFFC6DE, Description: "Light Pink", CatalogNumber: "012", Brand: "Hus"},
	{Color: 0x523100, Description: "Dark Brown", CatalogNumber: "027", Brand: "Hus"},
	{Color: 0xB5A584, Description: "Light Brown", CatalogNumber: "029", Brand: "Hus"},
}

// shvThreads is the Husqvarna Viking SHV chart.
var shvThreads = []Thread{
	{Color: 0x000000, Description: "Black", CatalogNumber: "0", Brand: "Shv"},
	{Color: 0x0000FF, Description: "Blue", CatalogNumber: "1", Brand: "Shv"},
	{Color: 0x33CC66, Description: "Green", CatalogNumber: "2", Brand: "Shv"},
	{Color: 0xFF0000, Description: "Red", CatalogNumber: "3", Brand: "Shv"},
	{Color: 0xFF00FF, Description: "Purple", CatalogNumber: "4", Brand: "Shv"},
	{Color: 0xFFFF00, Description: "Yellow", CatalogNumber: "5", Brand: "Shv"},
	{Color: 0x7F7F7F, Description: "Gray", CatalogNumber: "6", Brand: "Shv"},
	{Color: 0x339AFF, Description: "Light Blue", CatalogNumber: "7", Brand: "Shv"},
	{Color: 0x00FF00, Description: "Light Green", CatalogNumber: "8", Brand: "Shv"},
	{Color: 0xFF7F00, Description: "Orange", CatalogNumber: "9", Brand: "Shv"},
	{Color: 0xFFA0B4, Description: "Pink", CatalogNumber: "10", Brand: "Shv"},
	{Color: 0x994B00, Description: "Brown", CatalogNumber: "11", Brand: "Shv"},
	{Color: 0xFFFFFF, Description: "White", CatalogNumber: "12", Brand: "Shv"},
	{Color: 0x000000, Description: "Black", CatalogNumber: "13", Brand: "Shv"},
	{Color: 0x000000, Description: "Black", CatalogNumber: "14", Brand: "Shv"},
	{Color: 0x000000, Description: "Black", CatalogNumber: "15", Brand: "Shv"},
	{Color: 0x000000, Description: "Black", CatalogNumber: "16", Brand: "Shv"},
	{Color: 0x000000, Description: "Black", CatalogNumber: "17", Brand: "Shv"},
	{Color: 0x000000, Description: "Black", CatalogNumber: "18", Brand: "Shv"},
	{Color: 0xFF7F7F, Description: "Light Red", CatalogNumber: "19", Brand: "Shv"},
	{Color: 0xFF7FFF, Description: "Light Purple", CatalogNumber: "20", Brand: "Shv"},
	{Color: 0xFFFF99, Description: "Light Yellow", CatalogNumber: "21", Brand: "Shv"},
	{Color: 0xC0C0C0, Description: "Light Gray", CatalogNumber: "22", Brand: "Shv"},
	{Color: 0x000000, Description: "Black", CatalogNumber: "23", Brand: "Shv"},
	{Color: 0x000000, Description: "Black", CatalogNumber: "24", Brand: "Shv"},
	{Color: 0xFFA541, Description: "Light Orange", CatalogNumber: "25", Brand: "Shv"},
	{Color: 0xFFCCCC, Description: "Light Pink", CatalogNumber: "26", Brand: "Shv"},
	{Color: 0xAF5A0A, Description: "Light Brown", CatalogNumber: "27", Brand: "Shv"},
	{Color: 0x000000, Description: "Black", CatalogNumber: "28", Brand: "Shv"},
	{Color: 0x000000, Description: "Black", CatalogNumber: "29", Brand: "Shv"},
	{Color: 0x000000, Description: "Black", CatalogNumber: "30", Brand: "Shv"},
	{Color: 0x000000, Description: "Black", CatalogNumber: "31", Brand: "Shv"},
	{Color: 0x000000, Description: "Black", CatalogNumber: "32", Brand: "Shv"},
	{Color: 0x00007F, Description: "Dark Blue", CatalogNumber: "33", Brand: "Shv"},
	{Color: 0x007F00, Description: "Dark Green", CatalogNumber: "34", Brand: "Shv"},
	{Color: 0x7F0000, Description: "Dark Red", CatalogNumber: "35", Brand: "Shv"},
	{Color: 0x7F007F, Description: "Dark Purple", CatalogNumber: "36", Brand: "Shv"},
	{Color: 0xC8C800, Description: "Dark Yellow", CatalogNumber: "37", Brand: "Shv"},
	{Color: 0x3C3C3C, Description: "Dark Gray", CatalogNumber: "38", Brand: "Shv"},
	{Color: 0x000000, Description: "Black", CatalogNumber: "39", Brand: "Shv"},
	{Color: 0x000000, Description: "Black", CatalogNumber: "40", Brand: "Shv"},
	{Color: 0xE83F00, Description: "Dark Orange", CatalogNumber: "41", Brand: "Shv"},
	{Color: 0xFF667A, Description: "Dark Pink", CatalogNumber: "42", Brand: "Shv"},
}

// sewThreads is the Janome SEW chart.
var sewThreads = []Thread{
	{Color: 0x000000, Description: "Unknown", CatalogNumber: "0", Brand: "Sew"},
	{Color: 0x000000, Description: "Black", CatalogNumber: "1", Brand: "Sew"},
	{Color: 0xFFFFFF, Description: "White", CatalogNumber: "2", Brand: "Sew"},
	{Color: 0xFFFF17, Description: "Sunflower", CatalogNumber: "3", Brand: "Sew"},
	{Color: 0xFAA060, Description: "Hazel", CatalogNumber: "4", Brand: "Sew"},
	{Color: 0x5C7649, Description: "Green Dust", CatalogNumber: "5", Brand: "Sew"},
	{Color: 0x40C030, Description: "Green", CatalogNumber: "6", Brand: "Sew"},
	{Color: 0x65C2C8, Description: "Sky", CatalogNumber: "7", Brand: "Sew"},
	{Color: 0xAC80BE, Description: "Purple", CatalogNumber: "8", Brand: "Sew"},
	{Color: 0xF5BCCB, Description: "Pink", CatalogNumber: "9", Brand: "Sew"},
	{Color: 0xFF0000, Description: "Red", CatalogNumber: "10", Brand: "Sew"},
	{Color: 0xC08000, Description: "Brown", CatalogNumber: "11", Brand: "Sew"},
	{Color: 0x0000F0, Description: "Blue", CatalogNumber: "12", Brand: "Sew"},
	{Color: 0xE4C35D, Description: "Gold", CatalogNumber: "13", Brand: "Sew"},
	{Color: 0xA52A2A, Description: "Dark Brown", CatalogNumber: "14", Brand: "Sew"},
	{Color: 0xD5B0D4, Description: "Pale Violet", CatalogNumber: "15", Brand: "Sew"},
	{Color: 0xFCF294, Description: "Pale Yellow", CatalogNumber: "16", Brand: "Sew"},
	{Color: 0xF0D0C0, Description: "Pale Pink", CatalogNumber: "17", Brand: "Sew"},
	{Color: 0xFFC000, Description: "Peach", CatalogNumber: "18", Brand: "Sew"},
	{Color: 0xC9A480, Description: "Beige", CatalogNumber: "19", Brand: "Sew"},
	{Color: 0x9B3D4B, Description: "Wine Red", CatalogNumber: "20", Brand: "Sew"},
	{Color: 0xA0B8CC, Description: "Pale Sky", CatalogNumber: "21", Brand: "Sew"},
	{Color: 0x7FC21C, Description: "Yellow Green", CatalogNumber: "22", Brand: "Sew"},
	{Color: 0xB9B9B9, Description: "Silver Grey", CatalogNumber: "23", Brand: "Sew"},
	{Color: 0xA0A0A0, Description: "Grey", CatalogNumber: "24", Brand: "Sew"},
	{Color: 0x98D6BD, Description: "Pale Aqua", CatalogNumber: "25", Brand: "Sew"},
	{Color: 0xB8F0F0, Description: "Baby Blue", CatalogNumber: "26", Brand: "Sew"},
	{Color: 0x368BA0, Description: "Powder Blue", CatalogNumber: "27", Brand: "Sew"},
	{Color: 0x4F83AB, Description: "Bright Blue", CatalogNumber: "28", Brand: "Sew"},
	{Color: 0x386A91, Description: "Slate Blue", CatalogNumber: "29", Brand: "Sew"},
	{Color: 0x00206B, Description: "Nave Blue", CatalogNumber: "30", Brand: "Sew"},
	{Color: 0xE5C5CA, Description: "Salmon Pink", CatalogNumber: "31", Brand: "Sew"},
	{Color: 0xF9676B, Description: "Coral", CatalogNumber: "32", Brand: "Sew"},
	{Color: 0xE3311F, Description: "Burnt Orange", CatalogNumber: "33", Brand: "Sew"},
	{Color: 0xE2A188, Description: "Cinnamon", CatalogNumber: "34", Brand: "Sew"},
	{Color: 0xB59474, Description: "Umber", CatalogNumber: "35", Brand: "Sew"},
	{Color: 0xE4CF99, Description: "Blonde", CatalogNumber: "36", Brand: "Sew"},
	{Color: 0xE1CB00, Description: "Sunflower", CatalogNumber: "37", Brand: "Sew"},
	{Color: 0xE1ADD4, Description: "Orchid Pink", CatalogNumber: "38", Brand: "Sew"},
	{Color: 0xC3007E, Description: "Peony Purple", CatalogNumber: "39", Brand: "Sew"},
	{Color: 0x80004B, Description: "Burgundy", CatalogNumber: "40", Brand: "Sew"},
	{Color: 0xA060B0, Description: "Royal Purple", CatalogNumber: "41", Brand: "Sew"},
	{Color: 0xC04020, Description: "Cardinal Red", CatalogNumber: "42", Brand: "Sew"},
	{Color: 0xCAE0C0, Description: "Opal Green", CatalogNumber: "43", Brand: "Sew"},
	{Color: 0x899856, Description: "Moss Green", CatalogNumber: "44", Brand: "Sew"},
	{Color: 0x00AA00, Description: "Meadow Green", CatalogNumber: "45", Brand: "Sew"},
	{Color: 0x218A21, Description: "Dark Green", CatalogNumber: "46", Brand: "Sew"},
	{Color: 0x5DAE94, Description: "Aquamarine", CatalogNumber: "47", Brand: "Sew"},
	{Color: 0x4CBF8F, Description: "Emerald Green", CatalogNumber: "48", Brand: "Sew"},
	{Color: 0x007772, Description: "Peacock Green", CatalogNumber: "49", Brand: "Sew"},
	{Color: 0x707070, Description: "Dark Grey", CatalogNumber: "50", Brand: "Sew"},
	{Color: 0xF2FFFF, Description: "Ivory White", CatalogNumber: "51", Brand: "Sew"},
	{Color: 0xB15818, Description: "Hazel", CatalogNumber: "52", Brand: "Sew"},
	{Color: 0xCB8A07, Description: "Toast", CatalogNumber: "53", Brand: "Sew"},
	{Color: 0xF7927B, Description: "Salmon", CatalogNumber: "54", Brand: "Sew"},
	{Color: 0x98692D, Description: "Cocoa Brown", CatalogNumber: "55", Brand: "Sew"},
	{Color: 0xA27148, Description: "Sienna", CatalogNumber: "56", Brand: "Sew"},
	{Color: 0x7B554A, Description: "Sepia", CatalogNumber: "57", Brand: "Sew"},
	{Color: 0x4F3946, Description: "Dark Sepia", CatalogNumber: "58", Brand: "Sew"},
	{Color: 0x523A97, Description: "Violet Blue", CatalogNumber: "59", Brand: "Sew"},
	{Color: 0x0000A0, Description: "Blue Ink", CatalogNumber: "60", Brand: "Sew"},
	{Color: 0x0096DE, Description: "Solar Blue", CatalogNumber: "61", Brand: "Sew"},
	{Color: 0xB2DD53, Description: "Green Dust", CatalogNumber: "62", Brand: "Sew"},
	{Color: 0xFA8FBB, Description: "Crimson", CatalogNumber: "63", Brand: "Sew"},
	{Color: 0xDE649E, Description: "Floral Pink", CatalogNumber: "64", Brand: "Sew"},
	{Color: 0xB55066, Description: "Wine", CatalogNumber: "65", Brand: "Sew"},
	{Color: 0x5E5747, Description: "Olive Drab", CatalogNumber: "66", Brand: "Sew"},
	{Color: 0x4C881F, Description: "Meadow", CatalogNumber: "67", Brand: "Sew"},
	{Color: 0xE4DC79, Description: "Canary Yellow", CatalogNumber: "68", Brand: "Sew"},
	{Color: 0xCB8A1A, Description: "Toast", CatalogNumber: "69", Brand: "Sew"},
	{Color: 0xC6AA42, Description: "Beige", CatalogNumber: "70", Brand: "Sew"},
	{Color: 0xECB02C, Description: "Honey Dew", CatalogNumber: "71", Brand: "Sew"},
	{Color: 0xF88040, Description: "Tangerine", CatalogNumber: "72", Brand: "Sew"},
	{Color: 0xFFE505, Description: "Ocean Blue", CatalogNumber: "73", Brand: "Sew"},
	{Color: 0xFA7A7A, Description: "Sepia", CatalogNumber: "74", Brand: "Sew"},
	{Color: 0x6BE000, Description: "Royal Purple", CatalogNumber: "75", Brand: "Sew"},
	{Color: 0x386CAE, Description: "Yellow Ocher", CatalogNumber: "76", Brand: "Sew"},
	{Color: 0xD0BAB0, Description: "Beige Grey", CatalogNumber: "77", Brand: "Sew"},
	{Color: 0xE3BE81, Description: "Bamboo", CatalogNumber: "78", Brand: "Sew"},
}
