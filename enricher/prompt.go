package enricher

import "fmt"

// Sentinel wraps the places block in the generated answer.
const Sentinel = "10-----10"

// Prompt asks for up to two places in each category, restricted to postalCode
// and wrapped between two Sentinel markers. The worked example anchors the format.
func Prompt(postalCode string) string {
	return fmt.Sprintf(`@Google Maps suggest specific locations nearby to visit in the zip code - %[1]s

Kindly take note of the clauses:
1. THE ZIP CODE OF THE LOCATIONS SHOULD BE *STRICTLY* %[1]s. If some address has a different zip code, either remove that entry or search again for another
2. Verify twice about the map links whether they are working
3. It should ideally contain two parks, malls, temples or churches or mosques, local restaurants. A category may be left empty. If there are no places with the matching zip code, display the text "No Nearby Places Found"
4. I want the result in the following format. Replace Location_1 and Location_2 with the respective names:

Here are your results buddy:
%[2]s

Parks:

Location_1: Address..
<map link>

Location_2: Address..
<map link>

Malls:

Location_1: Address..
<map link>

Location_2: Address..
<map link>

Religious places:

Location_1: Address..
<map link>

Location_2: Address..
<map link>

Restaurants:

Location_1: Address..
<map link>

Location_2: Address..
<map link>

%[2]s

The following is an example response:

Here are your results buddy:
%[2]s

Parks:

Sanjay Gandhi Park: Sanjay Gandhi Park, 80 Feet Rd, Chandra Layout, Stage 2, Hoysala Nagar, Bengaluru, Karnataka 560006, India.
<https://maps.app.goo.gl/jL5WjWfB85dG5n137>

Srikanteshwara Park: 7th Main Rd, RPC Layout, Vijayanagar, Bengaluru, Karnataka 560006, India.
<https://maps.app.goo.gl/gW2H2R3W9qjG8rM48>

Malls:

Religious places:

Shree Veeranjaneya Swamy Temple: 1st Main Rd, RPC Layout, Vijayanagar, Bengaluru, Karnataka 560006, India.
<https://maps.app.goo.gl/R6fE6YjYw47G9g8N6>

Jayamahal Church: 4/1, Jayamahal Main Rd, Jayamahal, Bengaluru, Karnataka 560006, India.
<https://maps.app.goo.gl/X91XbFf7f65d9bC58>

Restaurants:

The Marwadi Kitchen: 110, 1st Main Rd, RPC Layout, Vijayanagar, Bengaluru, Karnataka 560006, India.
<https://maps.app.goo.gl/X9TdxQWJ35Ff19W36>

Naati Mane: 5, 10th Main Rd, RPC Layout, Vijayanagar, Bengaluru, Karnataka 560006, India.
<https://maps.app.goo.gl/QG352H367L5Qo7xW9>

%[2]s`, postalCode, Sentinel)
}
